package framework

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Find returns the result for the test with the specified path, if any.
func (r Results) Find(path ...string) (TestResult, bool) {
	for _, t := range r.Tests {
		if t.TestID.Equal(TestID{Path: path}) {
			return t, true
		}
	}
	return TestResult{}, false
}

// Failed returns true if the test with the specified path was run and failed.
func (r Results) Failed(path ...string) bool {
	for _, t := range r.Failures {
		if t.TestID.Equal(TestID{Path: path}) {
			return true
		}
	}
	return false
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

func (t TestID) Equal(other TestID) bool {
	if len(t.Path) != len(other.Path) {
		return false
	}
	for i, p := range t.Path {
		if other.Path[i] != p {
			return false
		}
	}
	return true
}

// Name returns the last component of the test path.
func (t TestID) Name() string {
	if len(t.Path) == 0 {
		return ""
	}
	return t.Path[len(t.Path)-1]
}

// PrintResults writes a summary of the test run.
func PrintResults(dest io.Writer, results Results) {
	if results.OK() {
		color.New(color.FgGreen).Fprintf(dest, "All tests passed (%d)\n", len(results.Tests))
		return
	}
	color.New(color.FgRed).Fprintf(dest, "FAILED TESTS (%d of %d):\n", len(results.Failures), len(results.Tests))
	for _, f := range results.Failures {
		fmt.Fprintf(dest, "  * %s\n", f.TestID)
	}
}
