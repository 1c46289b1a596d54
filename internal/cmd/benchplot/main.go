// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Command benchplot draws benchmark charts, either the built-in data-transfer
// charts or the charts listed in a YAML manifest.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/petenewcomb/benchplot"
	"github.com/petenewcomb/benchplot/internal/manifest"
	"github.com/petenewcomb/benchplot/internal/telemetry"
	"github.com/petenewcomb/benchplot/internal/xferbench"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	manifestPath string
	outDir       string
	prefix       string
	backend      string
	jobs         int
	logLevel     string
	trace        bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "benchplot",
		Short: "Render benchmark charts",
		Long: `benchplot renders line charts of benchmark results.

Without --manifest it draws the throughput, latency, cache-miss and
cycles-per-byte charts of the built-in data-transfer results.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd.Context(), &opts)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "benchplot:", err)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.manifestPath, "manifest", "m", "", "YAML manifest listing the charts to draw")
	cmd.Flags().StringVarP(&opts.outDir, "outdir", "o", ".", "Output directory for the built-in charts")
	cmd.Flags().StringVar(&opts.prefix, "prefix", xferbench.DefaultPrefix, "File name prefix for the built-in charts")
	cmd.Flags().StringVar(&opts.backend, "backend", "gonum", "Rendering backend: gonum or gochart")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", benchplot.DefaultConcurrency, "Charts to render at once")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "Print trace spans to stdout")
	return cmd
}

func run(ctx context.Context, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, err := telemetry.NewLogger(opts.logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if opts.trace {
		shutdown, err := telemetry.SetupTracing(os.Stdout)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("Trace shutdown failed", zap.Error(err))
			}
		}()
	}

	renderer, err := newRenderer(opts.backend)
	if err != nil {
		return err
	}

	charts, err := loadCharts(opts)
	if err != nil {
		return err
	}
	if err := createOutputDirs(charts); err != nil {
		return err
	}

	_, err = benchplot.RenderAll(ctx, renderer, charts, benchplot.WithConcurrency(opts.jobs))
	return err
}

func newRenderer(backend string) (benchplot.Renderer, error) {
	switch backend {
	case "gonum":
		return benchplot.GonumRenderer{}, nil
	case "gochart":
		return benchplot.GoChartRenderer{}, nil
	}
	return nil, fmt.Errorf("invalid backend: %s (must be gonum or gochart)", backend)
}

func loadCharts(opts *options) ([]*benchplot.Chart, error) {
	if opts.manifestPath == "" {
		return xferbench.Charts(opts.outDir, opts.prefix)
	}
	m, err := manifest.Load(opts.manifestPath)
	if err != nil {
		return nil, err
	}
	return m.Charts()
}
