// Command archive-post runs the archive's post-processing plugins outside the
// plugin host: as text filters over stdin or a file, or as a batch over a file
// of records using the plugin manifest.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/simdem/archive-plugins/pkg/pipeline/redact"
)

func main() {
	cmd := newRootCommand(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			_, _ = fmt.Fprintln(os.Stderr, redact.Secrets(err.Error()))
		}
		var ue usageError
		if errors.As(err, &ue) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// usageError marks configuration and argument problems (exit status 2).
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}
