package template

import (
	"context"
	"testing"

	"github.com/simdem/archive-plugins/pkg/pipeline/core"
	"github.com/simdem/archive-plugins/pkg/pipeline/record"
	"github.com/simdem/archive-plugins/pkg/pipeline/worker"
	"github.com/simdem/archive-plugins/test/template/processor"
)

func TestTemplateCompilesWithPipelineKit(t *testing.T) {
	t.Parallel()

	p := processor.Processor{}
	var _ core.Transformer = p
	runner := core.ProcessFunc[record.Record, record.Record](p.Process)

	out, err := worker.ProcessAll(context.Background(), []record.Record{{"content": " law 4 ", "id": 4}}, runner.Process, worker.Options{Workers: 1})
	if err != nil {
		t.Fatalf("ProcessAll failed: %v", err)
	}
	if len(out) != 1 || out[0].Output["content"] != "law 4" || out[0].Output["id"] != 4 {
		t.Fatalf("unexpected output: %#v", out)
	}
}
