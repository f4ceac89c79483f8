package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/encoding/htmlindex"
)

var errInteractiveInput = errors.New("refusing to read from a terminal: pipe text in or pass a file")

// readInput reads the whole filter input from path, or from stdin when path is
// empty or "-". A non-empty encoding names a legacy charset (WHATWG label,
// e.g. "windows-874") to decode from.
func readInput(stdin io.Reader, path, encoding string) (string, error) {
	var r io.Reader
	if path == "" || path == "-" {
		if isTerminal(stdin) {
			return "", usageError{err: errInteractiveInput}
		}
		r = stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer func() {
			_ = f.Close()
		}()
		r = f
	}

	if enc := strings.TrimSpace(encoding); enc != "" {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return "", usageErrorf("unknown input encoding %q", enc)
		}
		r = e.NewDecoder().Reader(r)
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(b), nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
