package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simdem/archive-plugins/internal/app"
	"github.com/simdem/archive-plugins/internal/config"
	"github.com/simdem/archive-plugins/pkg/pipeline/schema"
	"github.com/simdem/archive-plugins/pkg/plugin"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var (
		manifestPath string
		author       string
		target       string
		stage        string
		inputPath    string
		outputPath   string
		only         []string
	)

	pipeEnv, envErr := config.LoadPipelineOptions()
	opts := pipeEnv

	cmd := &cobra.Command{
		Use:   "run --input records.jsonl --output out.jsonl",
		Short: "Apply the manifest's hooks to a file of records (.jsonl or .csv)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				return usageError{err: fmt.Errorf("config error: %w", envErr)}
			}
			if inputPath == "" || outputPath == "" {
				return usageErrorf("run requires --input and --output")
			}

			chain, err := buildChain(manifestPath, author, target, schema.NormalizeStage(stage), only)
			if err != nil {
				return err
			}
			if len(chain) == 0 {
				ctx.log().Warn("no plugins selected; records will be copied unchanged",
					zap.String("author", author), zap.String("target", target))
			}

			summary, err := app.RunLocal(cmd.Context(), inputPath, outputPath, chain, opts, ctx.log())
			if err != nil {
				return fmt.Errorf("local run failed: %w", err)
			}
			_, err = fmt.Fprintf(ctx.stdout, "run %s: %d records, %d transformed, %d unchanged on error\n",
				summary.RunID, summary.Records, summary.OK, len(summary.Failed))
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&manifestPath, "manifest", "", "Plugin manifest (.toml or .yaml); default $"+config.ManifestEnv+" or the XDG data dir")
	flags.StringVar(&author, "author", "", "Select plugins enabled for this user")
	flags.StringVar(&target, "target", schema.AnyTarget, "Record kind the hooks must target (eo, law, ...)")
	flags.StringVar(&stage, "stage", string(schema.StagePost), "Hook stage to run (pre or post)")
	flags.StringSliceVar(&only, "plugin", nil, "Run these builtin plugins in order instead of reading the manifest")
	flags.StringVar(&inputPath, "input", "", "Input records file")
	flags.StringVar(&outputPath, "output", "", "Output records file")
	flags.IntVar(&opts.Workers, "workers", pipeEnv.Workers, "Number of concurrent workers (env: WORKERS)")
	flags.IntVar(&opts.MaxRetries, "max-retries", pipeEnv.MaxRetries, "Max retries per record for transient failures (env: MAX_RETRIES)")
	flags.DurationVar(&opts.RequestTimeout, "request-timeout", pipeEnv.RequestTimeout, "Per-record timeout (env: REQUEST_TIMEOUT)")
	flags.Float64Var(&opts.RateLimitRPS, "rate-limit-rps", pipeEnv.RateLimitRPS, "Global rate limit (records/s), 0 disables (env: RATE_LIMIT_RPS)")
	flags.BoolVar(&opts.FailFast, "fail-fast", pipeEnv.FailFast, "Abort on the first record error (env: FAIL_FAST)")
	return cmd
}

// buildChain selects the hooks to run: the explicit --plugin list when given,
// otherwise the manifest entries for author, target and stage.
func buildChain(manifestPath, author, target string, stage schema.Stage, only []string) (plugin.Chain, error) {
	if len(only) > 0 {
		manifests := make([]plugin.Manifest, 0, len(only))
		for _, name := range only {
			manifests = append(manifests, plugin.Manifest{Name: strings.TrimSpace(name)})
		}
		chain, err := plugin.NewChain(manifests)
		if err != nil {
			return nil, usageError{err: err}
		}
		return chain, nil
	}

	if strings.TrimSpace(author) == "" {
		return nil, usageErrorf("run requires --author or --plugin")
	}
	reg, err := loadRegistry(manifestPath)
	if err != nil {
		return nil, err
	}
	return plugin.NewChain(reg.Hooks(author, target, stage))
}

func loadRegistry(manifestPath string) (*plugin.Registry, error) {
	path := strings.TrimSpace(manifestPath)
	if path == "" {
		var err error
		path, err = config.ManifestPath()
		if err != nil {
			return nil, err
		}
	}
	return plugin.LoadRegistry(path)
}
