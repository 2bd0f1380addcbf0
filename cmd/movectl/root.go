package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/joshuapare/movekit/cmd/movectl/logger"
	"github.com/joshuapare/movekit/move"
)

var (
	// Global flags
	verbose         bool
	quiet           bool
	jsonOut         bool
	configPath      string
	logFile         string
	outPath         string
	streamThreshold uint64

	// cfg is the merged file and flag configuration for the running command.
	cfg = DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "movectl",
	Short: "Verify and benchmark the movekit copy engine",
	Long: `movectl exercises the movekit copy engine. It can sweep the engine
through its correctness properties over guard-paged buffers, measure its
throughput against the builtin copy, and explain how a given request would
be dispatched.`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "JSONC config file (default ./"+ConfigFileName+" if present)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append structured logs to this file")
	rootCmd.PersistentFlags().StringVar(&outPath, "out", "", "Also write the JSON report to this file")
	rootCmd.PersistentFlags().
		Uint64Var(&streamThreshold, "stream-threshold", 0, "Streaming threshold in bytes (0 keeps the configured value)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the config file, applies flag overrides and starts logging.
func setup(cmd *cobra.Command, args []string) error {
	loaded, source, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	cfg = loaded
	if cmd.Flags().Changed("stream-threshold") {
		cfg.StreamThreshold = streamThreshold
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if err := logger.Init(logger.Options{Path: logFile, Level: level}); err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logger.Debug("config loaded", "source", source, "stream_threshold", cfg.StreamThreshold)
	if source != "" {
		printVerbose("Using config %s\n", source)
	}
	return nil
}

// engine returns the engine selected by the current configuration.
func engine() move.Engine {
	return move.Engine{StreamThreshold: uintptr(cfg.StreamThreshold)}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// writeReport writes v as indented JSON to --out, replacing any existing file
// atomically. It is a no-op without --out.
func writeReport(v interface{}) error {
	if outPath == "" {
		return nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if err := atomic.WriteFile(outPath, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	printVerbose("Report written to %s\n", outPath)
	return nil
}

// emit prints v as JSON when --json is set and writes the --out report.
// It reports whether the JSON form was printed.
func emit(v interface{}) (bool, error) {
	if err := writeReport(v); err != nil {
		return false, err
	}
	if jsonOut {
		return true, printJSON(v)
	}
	return false, nil
}
