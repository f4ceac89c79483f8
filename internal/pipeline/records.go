package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/simdem/archive-plugins/pkg/pipeline/core"
	"github.com/simdem/archive-plugins/pkg/pipeline/record"
	"github.com/simdem/archive-plugins/pkg/pipeline/redact"
	"github.com/simdem/archive-plugins/pkg/pipeline/worker"
)

type Options struct {
	Workers        int
	MaxRetries     int
	RequestTimeout time.Duration
	RateLimitRPS   float64
	FailFast       bool
}

// Failure records why one input record was left untransformed.
type Failure struct {
	Index    int
	Attempts int
	Error    string
}

// TransformRecords runs proc over every record and returns outputs in input
// order.
//
// A record that fails keeps its original content in the output and is listed
// in the returned failures, unless FailFast is set, in which case the first
// failure aborts the run.
func TransformRecords(
	ctx context.Context,
	recs []record.Record,
	proc core.Processor[record.Record, record.Record],
	opts Options,
	logger *zap.Logger,
) ([]record.Record, []Failure, error) {
	policy := worker.FailurePolicyPartialOutput
	if opts.FailFast {
		policy = worker.FailurePolicyFailFast
	}

	out, err := worker.ProcessAll(ctx, recs, proc.Process, worker.Options{
		Workers:           opts.Workers,
		MaxRetries:        opts.MaxRetries,
		RequestTimeout:    opts.RequestTimeout,
		RateLimitRPS:      opts.RateLimitRPS,
		FailurePolicy:     policy,
		BackoffInitial:    200 * time.Millisecond,
		BackoffMax:        2 * time.Second,
		BackoffJitterFrac: 0.2,
		Logger:            logger,
	})
	if err != nil {
		return nil, nil, err
	}

	rows := make([]record.Record, 0, len(out))
	var failures []Failure
	for i, item := range out {
		if item.Err != nil {
			failures = append(failures, Failure{Index: i, Attempts: item.Attempts, Error: redact.Secrets(item.Err.Error())})
			rows = append(rows, item.Input)
			continue
		}
		rows = append(rows, item.Output)
	}
	return rows, failures, nil
}
