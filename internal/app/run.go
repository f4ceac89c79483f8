package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simdem/archive-plugins/internal/pipeline"
	"github.com/simdem/archive-plugins/pkg/pipeline/core"
	localio "github.com/simdem/archive-plugins/pkg/pipeline/io/local"
	"github.com/simdem/archive-plugins/pkg/pipeline/record"
	"github.com/simdem/archive-plugins/pkg/pipeline/redact"
	"github.com/simdem/archive-plugins/pkg/plugin"
)

// Summary reports the outcome of a batch run.
type Summary struct {
	RunID    string
	Records  int
	OK       int
	Failed   []pipeline.Failure
	Duration time.Duration
}

// RunLocal reads records from inputPath, applies chain to each record's
// content, and writes the results to outputPath in the format implied by its
// extension. Records that cannot be transformed are written unchanged and
// reported in the summary.
func RunLocal(
	ctx context.Context,
	inputPath string,
	outputPath string,
	chain plugin.Chain,
	opts pipeline.Options,
	logger *zap.Logger,
) (Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	runID := uuid.NewString()
	logger = logger.With(zap.String("run", runID))
	runStart := time.Now()

	logger.Info("local run start",
		zap.String("input", inputPath),
		zap.String("output", outputPath),
		zap.Strings("plugins", chain.Names()),
		zap.Int("workers", opts.Workers),
		zap.Int("maxRetries", opts.MaxRetries),
		zap.Duration("timeout", opts.RequestTimeout),
		zap.Float64("rateLimitRPS", opts.RateLimitRPS),
		zap.Bool("failFast", opts.FailFast),
	)

	in := &localio.FileInput{Path: inputPath}
	readStart := time.Now()
	recs, err := in.Load(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load records: %w", err)
	}
	logger.Info("loaded records",
		zap.Int("count", len(recs)),
		zap.Duration("duration", time.Since(readStart).Round(time.Millisecond)))

	transformStart := time.Now()
	rows, failures, err := pipeline.TransformRecords(ctx, recs, newTracedProcessor(chain, logger), opts, logger)
	if err != nil {
		return Summary{}, err
	}
	for _, f := range failures {
		logger.Warn("record left unchanged",
			zap.Int("index", f.Index),
			zap.Int("attempts", f.Attempts),
			zap.String("error", f.Error))
	}
	logger.Info("transform complete",
		zap.Int("produced", len(rows)),
		zap.Int("ok", len(rows)-len(failures)),
		zap.Int("error", len(failures)),
		zap.Duration("duration", time.Since(transformStart).Round(time.Millisecond)))

	out := &localio.FileOutput{Path: outputPath, Header: in.Header()}
	if err := out.Store(ctx, rows); err != nil {
		return Summary{}, fmt.Errorf("store records: %w", err)
	}

	summary := Summary{
		RunID:    runID,
		Records:  len(rows),
		OK:       len(rows) - len(failures),
		Failed:   failures,
		Duration: time.Since(runStart),
	}
	logger.Info("local run complete", zap.Duration("totalDuration", summary.Duration.Round(time.Millisecond)))
	return summary, nil
}

// tracedProcessor logs each record before and after the chain runs. The raw
// input is only logged at debug level and always redacted.
type tracedProcessor struct {
	next   core.Processor[record.Record, record.Record]
	logger *zap.Logger

	mu       sync.Mutex
	attempts map[string]int
}

func newTracedProcessor(next core.Processor[record.Record, record.Record], logger *zap.Logger) *tracedProcessor {
	return &tracedProcessor{
		next:     next,
		logger:   logger,
		attempts: make(map[string]int),
	}
}

func (t *tracedProcessor) Process(ctx context.Context, in record.Record) (record.Record, error) {
	key := recordKey(in)
	attempt := t.nextAttempt(key)
	if ce := t.logger.Check(zap.DebugLevel, "transform request"); ce != nil {
		ce.Write(
			zap.String("record", key),
			zap.Int("attempt", attempt),
			zap.Any("input", redact.Fields(in)),
		)
	}

	start := time.Now()
	out, err := t.next.Process(ctx, in)
	elapsed := time.Since(start)
	if err != nil {
		t.logger.Debug("transform response",
			zap.String("record", key),
			zap.Int("attempt", attempt),
			zap.Duration("duration", elapsed),
			zap.String("status", "error"),
			zap.String("error", redact.Secrets(err.Error())))
		return out, err
	}
	t.logger.Debug("transform response",
		zap.String("record", key),
		zap.Int("attempt", attempt),
		zap.Duration("duration", elapsed),
		zap.String("status", "ok"))
	return out, nil
}

func (t *tracedProcessor) nextAttempt(key string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.attempts[key]++
	return t.attempts[key]
}

// recordKey picks a stable label for log lines: the record's id or name when
// present, otherwise its content length.
func recordKey(rec record.Record) string {
	for _, k := range []string{"id", "name"} {
		if v, ok := rec[k]; ok && v != nil {
			return fmt.Sprint(v)
		}
	}
	text, _ := rec.Content()
	return fmt.Sprintf("<%d bytes>", len(text))
}
