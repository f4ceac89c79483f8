// Package processor is the starting point for a new post hook: copy it, swap
// the transform, and register the result in the plugin manifest.
package processor

import (
	"context"
	"strings"

	"github.com/simdem/archive-plugins/pkg/pipeline/record"
)

type Processor struct{}

// Transform is the hook's text rewrite.
func (Processor) Transform(text string) string {
	return strings.TrimSpace(text)
}

func (p Processor) Process(_ context.Context, in record.Record) (record.Record, error) {
	return in.Transform(p.Transform)
}
