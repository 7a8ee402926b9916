package report

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/btcwallet/e2e-tests/framework"

	"github.com/pkg/errors"
)

const (
	statePassed  = "passed"
	stateFailed  = "failed"
	stateSkipped = "skipped"

	specName = "e2e-tests"
)

// NativeDocument is the native report produced by the built-in suite. It uses the same shape
// the converter reads, so runs of the built-in suite and of an external runner are converted
// the same way.
type NativeDocument struct {
	StartedTestsAt string      `json:"startedTestsAt"`
	EndedTestsAt   string      `json:"endedTestsAt"`
	TotalDuration  int64       `json:"totalDuration"`
	TotalTests     int         `json:"totalTests"`
	TotalPassed    int         `json:"totalPassed"`
	TotalFailed    int         `json:"totalFailed"`
	TotalSkipped   int         `json:"totalSkipped"`
	Runs           []NativeRun `json:"runs"`
}

type NativeRun struct {
	Spec  NativeSpec   `json:"spec"`
	Stats NativeStats  `json:"stats"`
	Tests []NativeTest `json:"tests"`
}

type NativeSpec struct {
	Name string `json:"name"`
}

type NativeStats struct {
	Tests     int    `json:"tests"`
	Passes    int    `json:"passes"`
	Failures  int    `json:"failures"`
	Skipped   int    `json:"skipped"`
	Duration  int64  `json:"duration"`
	StartedAt string `json:"startedAt"`
	EndedAt   string `json:"endedAt"`
}

type NativeTest struct {
	Title    []string `json:"title"`
	State    string   `json:"state"`
	Duration int64    `json:"duration"`
	Error    *string  `json:"error"`
}

// NewNativeReport builds a native report from the results of a suite run. Only leaf tests are
// reported; groups exist to give the leaves their titles.
func NewNativeReport(results framework.Results, started, ended time.Time) NativeDocument {
	stats := NativeStats{
		Duration:  ended.Sub(started).Milliseconds(),
		StartedAt: started.UTC().Format(timestampFormat),
		EndedAt:   ended.UTC().Format(timestampFormat),
	}
	tests := make([]NativeTest, 0)
	for _, r := range results.Leaves() {
		t := NativeTest{
			Title:    append([]string(nil), r.TestID.Path...),
			Duration: r.Duration.Milliseconds(),
		}
		switch {
		case r.Skipped:
			t.State = stateSkipped
			stats.Skipped++
		case r.Failed():
			t.State = stateFailed
			stats.Failures++
			messages := make([]string, 0, len(r.Errors))
			for _, e := range r.Errors {
				messages = append(messages, e.Error())
			}
			msg := strings.Join(messages, "\n")
			t.Error = &msg
		default:
			t.State = statePassed
			stats.Passes++
		}
		stats.Tests++
		tests = append(tests, t)
	}
	return NativeDocument{
		StartedTestsAt: stats.StartedAt,
		EndedTestsAt:   stats.EndedAt,
		TotalDuration:  stats.Duration,
		TotalTests:     stats.Tests,
		TotalPassed:    stats.Passes,
		TotalFailed:    stats.Failures,
		TotalSkipped:   stats.Skipped,
		Runs: []NativeRun{
			{Spec: NativeSpec{Name: specName}, Stats: stats, Tests: tests},
		},
	}
}

// WriteNativeReport writes doc to path, creating its directory if needed.
func WriteNativeReport(path string, doc NativeDocument) error {
	data, err := MarshalIndented(doc)
	if err != nil {
		return errors.Wrap(err, "encoding native report")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "creating %s", dir)
		}
	}
	if err := ioutil.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}
