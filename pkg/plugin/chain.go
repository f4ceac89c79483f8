package plugin

import (
	"context"
	"fmt"

	"github.com/simdem/archive-plugins/pkg/pipeline/core"
	"github.com/simdem/archive-plugins/pkg/pipeline/record"
)

// Step is one named transform in a Chain.
type Step struct {
	Name string
	core.Transformer
}

// Chain applies its steps to a record's content in order.
type Chain []Step

// NewChain resolves each manifest in order.
func NewChain(manifests []Manifest) (Chain, error) {
	chain := make(Chain, 0, len(manifests))
	for _, m := range manifests {
		t, err := Resolve(m)
		if err != nil {
			return nil, err
		}
		chain = append(chain, Step{Name: m.Name, Transformer: t})
	}
	return chain, nil
}

// Transform runs every step over text.
func (c Chain) Transform(text string) string {
	for _, step := range c {
		text = step.Transform(text)
	}
	return text
}

// Names returns the step names in order.
func (c Chain) Names() []string {
	names := make([]string, len(c))
	for i, step := range c {
		names[i] = step.Name
	}
	return names
}

// Process satisfies core.Processor for record batches.
func (c Chain) Process(ctx context.Context, in record.Record) (record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := in.Transform(c.Transform)
	if err != nil {
		return nil, fmt.Errorf("apply %v: %w", c.Names(), err)
	}
	return out, nil
}

var (
	_ core.Transformer                             = Chain(nil)
	_ core.Processor[record.Record, record.Record] = Chain(nil)
)
