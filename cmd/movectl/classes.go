package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/movekit/move"
)

func init() {
	rootCmd.AddCommand(newClassesCmd())
}

func newClassesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "List the size classes and how each is copied",
		Long: `The classes command prints every length class the router distinguishes,
its inclusive bounds, and the chunk strategy used for it.

Example:
  movectl classes
  movectl classes --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClasses()
		},
	}
}

// classInfo is one row of the classes table.
type classInfo struct {
	Class    string `json:"class"`
	Min      uint64 `json:"min"`
	Max      uint64 `json:"max,omitempty"`
	Strategy string `json:"strategy"`
}

var strategies = map[move.SizeClass]string{
	move.ClassZero:     "no-op",
	move.ClassOne:      "single byte",
	move.Class2To3:     "2-byte head + tail",
	move.Class4To7:     "4-byte head + tail",
	move.Class8To16:    "8-byte head + tail",
	move.Class17To32:   "16-byte head + tail",
	move.Class33To64:   "32-byte head + tail",
	move.Class65To128:  "2 vectors from each end",
	move.Class129To192: "4 head vectors + 2 tail vectors",
	move.Class193To256: "4 head vectors + 4 tail vectors",
	move.ClassLarge:    "aligned 128-byte blocks by relation",
}

func classTable() []classInfo {
	classes := move.Classes()
	rows := make([]classInfo, 0, len(classes))
	for _, c := range classes {
		lo, hi := c.Bounds()
		row := classInfo{Class: c.String(), Min: uint64(lo), Strategy: strategies[c]}
		if c != move.ClassLarge {
			row.Max = uint64(hi)
		}
		rows = append(rows, row)
	}
	return rows
}

func runClasses() error {
	rows := classTable()
	if printed, err := emit(rows); printed || err != nil {
		return err
	}

	printInfo("%-10s %-8s %-8s %s\n", "CLASS", "MIN", "MAX", "STRATEGY")
	for _, r := range rows {
		hi := "-"
		if r.Max != 0 || r.Min == 0 {
			hi = formatCount(int(r.Max))
		}
		printInfo("%-10s %-8s %-8s %s\n", r.Class, formatCount(int(r.Min)), hi, r.Strategy)
	}
	return nil
}
