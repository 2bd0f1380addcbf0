package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/movekit/cmd/movectl/logger"
	"github.com/joshuapare/movekit/pkg/bench"
)

var (
	benchSizes    string
	benchDuration string
	benchShift    int
)

func init() {
	rootCmd.AddCommand(newBenchCmd())
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure copy throughput against the builtin copy",
		Long: `The bench command times the engine and the builtin copy for each length
and reports throughput, the ratio between them, and the path the engine took.

Example:
  movectl bench
  movectl bench --sizes 64,4096,1048576 --duration 250ms
  movectl bench --sizes 4096 --shift 1 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runBench(ctx, cmd)
		},
	}

	cmd.Flags().StringVar(&benchSizes, "sizes", "", "Comma-separated lengths in bytes")
	cmd.Flags().StringVar(&benchDuration, "duration", "", "Minimum measured time per length (e.g. 100ms)")
	cmd.Flags().IntVar(&benchShift, "shift", 0, "Measure overlapping windows with dst = src + shift")
	return cmd
}

// parseSizes parses a comma-separated list of positive lengths.
func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid size %q: must be a positive integer", field)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

// benchOptions merges the config file with command flags.
func benchOptions(cmd *cobra.Command) (bench.Options, error) {
	c := cfg
	if cmd != nil && cmd.Flags().Changed("sizes") {
		sizes, err := parseSizes(benchSizes)
		if err != nil {
			return bench.Options{}, err
		}
		c.Bench.Sizes = sizes
	}
	if cmd != nil && cmd.Flags().Changed("duration") {
		c.Bench.MinDuration = benchDuration
	}
	if cmd != nil && cmd.Flags().Changed("shift") {
		c.Bench.Shift = benchShift
	}

	minDur, err := c.minDuration()
	if err != nil {
		return bench.Options{}, err
	}
	return bench.Options{
		Sizes:       c.Bench.Sizes,
		Shift:       c.Bench.Shift,
		SrcAlign:    c.Bench.SrcAlign,
		DstAlign:    c.Bench.DstAlign,
		MinDuration: minDur,
		Engine:      engine(),
		Logger:      logger.L,
	}, nil
}

func runBench(ctx context.Context, cmd *cobra.Command) error {
	opts, err := benchOptions(cmd)
	if err != nil {
		return err
	}
	printVerbose("Benchmarking %d sizes\n", len(opts.Sizes))

	results, err := bench.Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("bench failed: %w", err)
	}
	logger.Info("bench finished", "sizes", len(results))

	if printed, err := emit(results); printed || err != nil {
		return err
	}

	printInfo("%-24s %-8s %-10s %14s %14s %7s\n", "SIZE", "CLASS", "PATH", "ENGINE", "COPY", "RATIO")
	for _, r := range results {
		printInfo("%-24s %-8s %-10s %14s %14s %6.2fx\n",
			formatBytes(r.Size), r.Class, r.Path,
			formatRate(r.BytesPerSec), formatRate(r.BaselineBytesPerSec), r.Ratio())
	}
	return nil
}
