package framework

import (
	"fmt"
	"strings"
	"time"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

// TestResult is the outcome of one Context. Group results are recorded for every Context that
// ran subtests of its own; they are kept so that failures in group-level setup are visible, but
// reports count only the leaves.
type TestResult struct {
	TestID   TestID
	Errors   []error
	Skipped  bool
	Group    bool
	Duration time.Duration
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Leaves returns the results of every test that did not run subtests, in execution order.
func (r Results) Leaves() []TestResult {
	var ret []TestResult
	for _, t := range r.Tests {
		if !t.Group && len(t.TestID.Path) > 0 {
			ret = append(ret, t)
		}
	}
	return ret
}

func (r TestResult) Failed() bool {
	return !r.Skipped && len(r.Errors) > 0
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}
