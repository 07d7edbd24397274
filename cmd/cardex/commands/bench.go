package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/cardex/internal/backends"
	"github.com/jmylchreest/cardex/internal/bench"
	"github.com/jmylchreest/cardex/internal/config"
	"github.com/jmylchreest/cardex/internal/logger"
	"github.com/jmylchreest/cardex/pkg/pipeline"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run every backend on one document and compare the results",
	Long: `Run the extraction pipeline once per backend, concurrently, on the
same document. Each backend's records are written to output_<name>.<ext>
in the output directory, a summary.json describes the run, and a
comparison table is printed.

The input is the first existing path among the --input values. A backend
that fails to read the document produces an empty output and does not
affect the others.`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)

	flags := benchCmd.Flags()
	flags.StringSliceP("input", "i", config.DefaultInputs, "input document, tried in order (can be repeated)")
	flags.String("out-dir", ".", "directory for output files")
	flags.String("format", "json", "output format: json, jsonl, yaml")
	flags.StringSliceP("backend", "b", nil, "backend to run (can be repeated; default pdf, fitz, pdfcpu, fitz-html)")

	_ = viper.BindPFlag("bench.input", flags.Lookup("input"))
	_ = viper.BindPFlag("bench.out_dir", flags.Lookup("out-dir"))
	_ = viper.BindPFlag("bench.format", flags.Lookup("format"))
	_ = viper.BindPFlag("bench.backend", flags.Lookup("backend"))
}

func runBench(cmd *cobra.Command, _ []string) error {
	cfg, l, err := setup()
	if err != nil {
		return err
	}

	format, err := cfg.Bench.OutputFormat()
	if err != nil {
		return err
	}

	input, fellBack, err := config.ResolveInput(cfg.Bench.Inputs)
	if err != nil {
		return err
	}
	if fellBack {
		logger.Warn("input not found, using fallback", "wanted", cfg.Bench.Inputs[0], "using", input)
	}

	bs, err := backends.Select(cfg.Bench.Backends)
	if err != nil {
		return err
	}

	p, err := pipeline.New(pipeline.WithLayout(l), pipeline.WithLogger(logger.Default()))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Bench.OutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	runner := bench.NewRunner(p)
	runner.Progress = func(ev bench.Event) {
		switch ev.Type {
		case bench.EventStarted:
			logger.Info("running backend", "backend", ev.Backend)
		case bench.EventCompleted:
			logger.Info("backend finished", "backend", ev.Backend, "records", ev.Records, "duration", ev.Duration)
		case bench.EventFailed:
			logger.Warn("backend failed", "backend", ev.Backend, "duration", ev.Duration, "error", ev.Err)
		}
	}

	started := time.Now()
	results := runner.Run(ctx, input, bs)

	report := &bench.Report{
		OutDir: cfg.Bench.OutDir,
		Format: format,
		Out:    cmd.OutOrStdout(),
	}
	summary, err := report.Write(input, started, results)
	if err != nil {
		return err
	}

	logger.Debug("run complete", "run_id", summary.RunID, "elapsed", time.Since(started))
	return nil
}
