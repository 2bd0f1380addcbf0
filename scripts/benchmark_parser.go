// Command benchmark_parser turns `go test -bench` output from the move package
// into a markdown report comparing each engine benchmark with the builtin
// copy at the same length.
//
//	go test -run '^$' -bench . ./move | go run ./scripts -output bench.md
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// baselineGroup is the benchmark every other group is compared against.
const baselineGroup = "Builtin_Copy"

// BenchmarkResult is one parsed benchmark line.
type BenchmarkResult struct {
	Name        string
	Group       string // e.g. "Move_Disjoint"
	Size        int
	Iterations  int
	NsPerOp     float64
	MBPerSec    float64
	AllocsPerOp int64
}

// ComparisonResult pairs one engine measurement with the baseline.
type ComparisonResult struct {
	Group      string
	Size       int
	EngineNs   float64
	BaselineNs float64
	EngineMBs  float64
	Allocs     int64
	Speedup    float64 // baseline ns / engine ns; 0 without a baseline
}

var (
	inputFile = flag.String(
		"input",
		"",
		"Input file with benchmark output (stdin if not specified)",
	)
	outputFile = flag.String("output", "", "Output markdown file (stdout if not specified)")
	quiet      = flag.Bool("quiet", false, "Suppress progress output")
)

// Benchmark_Move_Disjoint/n=4096-8   1000000   95.2 ns/op   43025.11 MB/s   0 B/op   0 allocs/op
var benchmarkRegex = regexp.MustCompile(
	`^Benchmark_?(\w+)/n=(\d+)(?:-\d+)?\s+(\d+)\s+([\d.]+)\s+ns/op(?:\s+([\d.]+)\s+MB/s)?(?:\s+\d+\s+B/op)?(?:\s+(\d+)\s+allocs/op)?`,
)

func main() {
	flag.Parse()

	var in io.Reader = os.Stdin
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	results := parseBenchmarks(bufio.NewScanner(in))
	if !*quiet {
		fmt.Fprintf(os.Stderr, "Parsed %d benchmark results\n", len(results))
	}

	comparisons := generateComparisons(results)
	report := generateMarkdownReport(comparisons, time.Now())

	if *outputFile == "" {
		fmt.Fprint(os.Stdout, report)
		return
	}
	if err := os.WriteFile(*outputFile, []byte(report), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	if !*quiet {
		fmt.Fprintf(os.Stderr, "Report written to %s\n", *outputFile)
	}
}

func parseBenchmarks(scanner *bufio.Scanner) []BenchmarkResult {
	var results []BenchmarkResult
	for scanner.Scan() {
		line := scanner.Text()

		// Accept `go test -json` events as well as plain output.
		var event map[string]any
		if err := json.Unmarshal([]byte(line), &event); err == nil {
			if output, ok := event["Output"].(string); ok {
				line = output
			}
		}

		m := benchmarkRegex.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		size, _ := strconv.Atoi(m[2])
		iterations, _ := strconv.Atoi(m[3])
		nsPerOp, _ := strconv.ParseFloat(m[4], 64)
		r := BenchmarkResult{
			Name:       m[0][:strings.IndexAny(m[0], " \t")],
			Group:      m[1],
			Size:       size,
			Iterations: iterations,
			NsPerOp:    nsPerOp,
		}
		if m[5] != "" {
			r.MBPerSec, _ = strconv.ParseFloat(m[5], 64)
		}
		if m[6] != "" {
			r.AllocsPerOp, _ = strconv.ParseInt(m[6], 10, 64)
		}
		results = append(results, r)
	}
	return results
}

func generateComparisons(results []BenchmarkResult) []ComparisonResult {
	baseline := make(map[int]BenchmarkResult)
	for _, r := range results {
		if r.Group == baselineGroup {
			baseline[r.Size] = r
		}
	}

	var comparisons []ComparisonResult
	for _, r := range results {
		if r.Group == baselineGroup {
			continue
		}
		c := ComparisonResult{
			Group:     r.Group,
			Size:      r.Size,
			EngineNs:  r.NsPerOp,
			EngineMBs: r.MBPerSec,
			Allocs:    r.AllocsPerOp,
		}
		if b, ok := baseline[r.Size]; ok && r.NsPerOp > 0 {
			c.BaselineNs = b.NsPerOp
			c.Speedup = b.NsPerOp / r.NsPerOp
		}
		comparisons = append(comparisons, c)
	}

	sort.Slice(comparisons, func(i, j int) bool {
		if comparisons[i].Group != comparisons[j].Group {
			return comparisons[i].Group < comparisons[j].Group
		}
		return comparisons[i].Size < comparisons[j].Size
	})
	return comparisons
}

func generateMarkdownReport(comparisons []ComparisonResult, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("# Copy Engine Benchmark Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format("2006-01-02 15:04:05")))

	faster, compared := 0, 0
	for _, c := range comparisons {
		if c.Speedup == 0 {
			continue
		}
		compared++
		if c.Speedup >= 1 {
			faster++
		}
	}
	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- Measurements: %d\n", len(comparisons)))
	sb.WriteString(fmt.Sprintf("- Compared with builtin copy: %d\n", compared))
	sb.WriteString(fmt.Sprintf("- At least as fast as builtin copy: %d\n\n", faster))

	group := ""
	for i, c := range comparisons {
		if c.Group != group {
			group = c.Group
			sb.WriteString(fmt.Sprintf("## %s\n\n", strings.ReplaceAll(group, "_", " ")))
			sb.WriteString("| Size | Engine | Builtin | MB/s | Allocs | Speedup |\n")
			sb.WriteString("|-----:|-------:|--------:|-----:|-------:|--------:|\n")
		}
		baseline, speedup := "-", "-"
		if c.Speedup != 0 {
			baseline = formatNs(c.BaselineNs)
			speedup = fmt.Sprintf("%.2fx", c.Speedup)
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %d | %s |\n",
			formatSize(c.Size), formatNs(c.EngineNs), baseline,
			formatNumber(c.EngineMBs), c.Allocs, speedup))
		if i+1 == len(comparisons) || comparisons[i+1].Group != group {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func formatNs(ns float64) string {
	switch {
	case ns >= 1e6:
		return fmt.Sprintf("%.2f ms", ns/1e6)
	case ns >= 1e3:
		return fmt.Sprintf("%.2f µs", ns/1e3)
	default:
		return fmt.Sprintf("%.1f ns", ns)
	}
}

func formatNumber(n float64) string {
	if n == 0 {
		return "-"
	}
	return strconv.FormatFloat(n, 'f', 0, 64)
}

func formatSize(n int) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%d MiB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%d KiB", n>>10)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
