//go:build wasip1

// Command quotediv is the extism guest for the quote-to-div post hook.
//
// Build with:
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o quote_div.wasm ./cmd/plugins/quotediv
package main

import (
	"github.com/extism/go-pdk"

	"github.com/simdem/archive-plugins/pkg/pipeline/record"
	"github.com/simdem/archive-plugins/pkg/textfx/quotediv"
)

//go:wasmexport post
func post() int32 {
	out, err := record.Apply(pdk.Input(), func(s string) string {
		return quotediv.Wrap(s)
	})
	if err != nil {
		pdk.SetError(err)
		return 1
	}
	pdk.Output(out)
	return 0
}

func main() {}
