package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

// resetGlobals restores flag state between table cases.
func resetGlobals(t *testing.T) {
	t.Helper()
	verbose = false
	quiet = false
	jsonOut = false
	outPath = ""
	cfg = DefaultConfig()
	routeDstOff, routeSrcOff, routeShift = 0, 0, 0
	verifyMaxSmall, verifyAlignSpan, verifyQuick = 0, 0, false
	benchSizes, benchDuration, benchShift = "", "", 0
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	// Drain concurrently so large outputs cannot fill the pipe.
	done := make(chan *bytes.Buffer)
	go func() {
		var buf bytes.Buffer
		buf.ReadFrom(r)
		done <- &buf
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	return (<-done).String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}
