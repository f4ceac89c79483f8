package main

import (
	"context"
	"fmt"

	"github.com/simdem/archive-plugins/pkg/pipeline/core"
	"github.com/simdem/archive-plugins/pkg/pipeline/record"
	"github.com/simdem/archive-plugins/pkg/pipeline/worker"
	"github.com/simdem/archive-plugins/test/template/processor"
)

func main() {
	p := processor.Processor{}
	runner := core.ProcessFunc[record.Record, record.Record](p.Process)

	out, err := worker.ProcessAll(context.Background(), []record.Record{{"content": "  EO 1  "}}, runner.Process, worker.Options{Workers: 1})
	if err != nil {
		panic(err)
	}
	fmt.Println(out[0].Output["content"])
}
