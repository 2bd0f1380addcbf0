package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/movekit/cmd/movectl/logger"
	"github.com/joshuapare/movekit/move"
	"github.com/joshuapare/movekit/pkg/verify"
)

var (
	verifyMaxSmall  int
	verifyAlignSpan int
	verifyQuick     bool
)

func init() {
	rootCmd.AddCommand(newVerifyCmd())
}

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the copy engine against its correctness properties",
		Long: `The verify command sweeps the engine over guard-paged buffers: every small
length at every alignment pair, large disjoint lengths, overlapping windows in
both directions against a read-all-then-write-all reference, the same-pointer
no-op, return values, and streaming versus ordinary copies. Any access outside
the requested windows faults on a guard page and is reported as a failure.

The command exits non-zero when any case fails.

Example:
  movectl verify
  movectl verify --quick
  movectl verify --align-span 4096 --out report.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runVerify(ctx, cmd)
		},
	}

	cmd.Flags().IntVar(&verifyMaxSmall, "max-small", 0, "Largest length swept at every alignment pair")
	cmd.Flags().IntVar(&verifyAlignSpan, "align-span", 0, "Byte offsets tried per pointer in the small sweep")
	cmd.Flags().BoolVar(&verifyQuick, "quick", false, "Narrow sweep for a fast smoke check")
	return cmd
}

// verifyConfig merges the config file with command flags.
func verifyConfig(cmd *cobra.Command) verify.Config {
	vc := verify.Config{
		MaxSmall:  cfg.Verify.MaxSmall,
		AlignSpan: cfg.Verify.AlignSpan,
		Large:     cfg.Verify.Large,
		Shifts:    cfg.Verify.Shifts,
		Engine:    engine(),
		Logger:    logger.L,
	}
	if verifyQuick {
		vc.AlignSpan = 8
		vc.Large = []int{257, 1000, 4096, 32768}
		vc.Shifts = []int{1, 32, 129}
	}
	if cmd != nil && cmd.Flags().Changed("max-small") {
		vc.MaxSmall = verifyMaxSmall
	}
	if cmd != nil && cmd.Flags().Changed("align-span") {
		vc.AlignSpan = verifyAlignSpan
	}
	return vc
}

func runVerify(ctx context.Context, cmd *cobra.Command) error {
	vc := verifyConfig(cmd)
	printVerbose("Verifying engine (stream threshold %s)\n", formatThreshold(effectiveThreshold()))

	report, err := verify.Run(ctx, vc)
	if err != nil {
		return fmt.Errorf("verify aborted after %s cases: %w", formatCount(report.Cases), err)
	}
	logger.Info("verify finished", "cases", report.Cases, "failures", len(report.Failures)+report.Dropped)

	printed, err := emit(report)
	if err != nil {
		return err
	}
	if !printed {
		printVerifyReport(report)
	}
	return report.Err()
}

func printVerifyReport(report verify.Report) {
	printInfo("\nVerify Results:\n")
	printInfo("  Cases:   %s\n", formatCount(report.Cases))
	for _, c := range []verify.Check{
		verify.CheckDisjoint, verify.CheckBounds, verify.CheckOverlap,
		verify.CheckSame, verify.CheckReturn, verify.CheckStreaming, verify.CheckFault,
	} {
		if report.ByCheck[c] > 0 {
			printInfo("    %-10s %s\n", c, formatCount(report.ByCheck[c]))
		}
	}
	printInfo("  Elapsed: %s\n", report.Elapsed.Round(time.Millisecond))

	if len(report.Failures) == 0 {
		printInfo("\n  ✓ All cases passed\n")
		return
	}
	printInfo("\nFailures:\n")
	for _, f := range report.Failures {
		printInfo("  ✗ %s\n", f)
	}
	if report.Dropped > 0 {
		printInfo("  ... and %d more\n", report.Dropped)
	}
}

// effectiveThreshold resolves a zero threshold to the engine default.
func effectiveThreshold() uint64 {
	if cfg.StreamThreshold == 0 {
		return uint64(move.DefaultStreamThreshold)
	}
	return cfg.StreamThreshold
}
