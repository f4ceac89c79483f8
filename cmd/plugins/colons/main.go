//go:build wasip1

// Command colons is the extism guest for the colon-indentation post hook.
//
// Build with:
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o colons.wasm ./cmd/plugins/colons
package main

import (
	"github.com/extism/go-pdk"

	"github.com/simdem/archive-plugins/pkg/pipeline/record"
	"github.com/simdem/archive-plugins/pkg/pipeline/redact"
	"github.com/simdem/archive-plugins/pkg/textfx/colons"
)

//go:wasmexport post
func post() int32 {
	input := pdk.Input()
	pdk.Log(pdk.LogDebug, redact.Secrets(string(input)))

	out, err := record.Apply(input, colons.Colonize)
	if err != nil {
		pdk.SetError(err)
		return 1
	}
	pdk.Output(out)
	return 0
}

func main() {}
