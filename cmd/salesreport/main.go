package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"salesreport/internal/config"
	"salesreport/internal/infrastructure"
	"salesreport/internal/operations"
)

type options struct {
	configPath string
	input      string
	output     string
	logLevel   string
	trace      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "salesreport",
		Short: "Build the supermarket sales workbook",
		Long: `Load the sales CSV, derive Subtotal and Total, summarize the sales and
write a styled workbook with the dataset, the summary and a chart figure.

Settings come from salesreport.yaml and SALESREPORT_* environment variables;
flags override both.`,
		Version:       config.AppVersion,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), opts, out, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "YAML config file (default: salesreport.yaml if present)")
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "input CSV file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output workbook")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "debug | info | warn | error")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "print pipeline spans to stderr")

	return cmd
}

func runReport(ctx context.Context, opts *options, out, errOut io.Writer) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if err := applyOverrides(cfg, opts); err != nil {
		return err
	}

	paths, err := config.GetPaths(cfg)
	if err != nil {
		return err
	}
	cfg.Logging.FilePath = paths.LogFile

	logger, err := infrastructure.InitializeLogger(cfg.Logging, errOut)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()
	paths.LogPathResolution(logger)

	tracing, err := infrastructure.InitializeTracing(cfg.Tracing, errOut, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := tracing.Shutdown(context.Background()); err != nil {
			logger.Warn("Tracing shutdown failed", slog.String("error", err.Error()))
		}
	}()

	manager, err := operations.NewReportPipeline(operations.NewConfigFrom(cfg.Pipeline), logger)
	if err != nil {
		return err
	}

	run := operations.NewRun(cfg, paths)
	if err := manager.Execute(ctx, run); err != nil {
		return err
	}

	fmt.Fprintln(out, config.CompletionMessage)
	return nil
}

// applyOverrides copies set flags onto cfg and revalidates it
func applyOverrides(cfg *config.Config, opts *options) error {
	changed := false
	if opts.input != "" {
		cfg.Report.InputPath = opts.input
		changed = true
	}
	if opts.output != "" {
		cfg.Report.OutputPath = opts.output
		changed = true
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
		changed = true
	}
	if opts.trace {
		cfg.Tracing.Enabled = true
		changed = true
	}
	if !changed {
		return nil
	}
	return cfg.Validate()
}
