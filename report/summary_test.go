package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintSummary(t *testing.T) {
	var out bytes.Buffer
	PrintSummary(&out, "Test Summary", Summary{Total: 5, Passed: 4, Failed: 1, Duration: 1200})
	s := out.String()
	assert.Contains(t, s, "Test Summary")
	assert.Contains(t, s, "TOTAL")
	assert.Contains(t, s, "1.20s")
}

func TestPrintTests(t *testing.T) {
	var out bytes.Buffer
	PrintTests(&out, nil)
	assert.Empty(t, out.String())

	PrintTests(&out, []TestOutcome{{Name: "Suite > case", Status: "passed", Duration: 42}})
	assert.Contains(t, out.String(), "Suite > case")
	assert.Contains(t, out.String(), "42ms")
}
