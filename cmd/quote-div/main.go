// Command quote-div reads text on stdin and writes it to stdout with quoted
// passages wrapped in toccolours div blocks.
//
// Usage:
//
//	quote-div < input.txt > output.txt
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/simdem/archive-plugins/pkg/textfx/quotediv"
)

func main() {
	if err := run(os.Stdin, os.Stdout); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "quote-div: %s\n", err)
		os.Exit(1)
	}
}

func run(r io.Reader, w io.Writer) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, quotediv.Wrap(string(b)))
	return err
}
