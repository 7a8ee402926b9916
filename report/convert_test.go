package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2026, 10, 19, 8, 30, 0, 123000000, time.UTC)

func fixedConverter() Converter {
	c := NewConverter("qa")
	c.Now = func() time.Time { return fixedTime }
	return c
}

func mustParse(t *testing.T, data string) NativeReport {
	r, err := ParseNativeReport([]byte(data))
	require.NoError(t, err)
	return r
}

func TestSummaryFromStats(t *testing.T) {
	r := mustParse(t, `{"runs":[{"stats":{"tests":5,"passes":4,"failures":1,"skipped":0,"duration":1200},"tests":[]}]}`)
	assert.Equal(t, Summary{Total: 5, Passed: 4, Failed: 1, Skipped: 0, Duration: 1200}, r.Summary())
}

func TestMissingRunsYieldsDefaults(t *testing.T) {
	for _, data := range []string{`{}`, `{"runs":[]}`, `{"runs":"nope"}`, `{"runs":[{}]}`, `[]`, `null`} {
		t.Run(data, func(t *testing.T) {
			r := mustParse(t, data)
			assert.Equal(t, Summary{}, r.Summary())
			tests := r.Tests()
			assert.NotNil(t, tests)
			assert.Len(t, tests, 0)
		})
	}
}

func TestNonNumericStatsAreZero(t *testing.T) {
	r := mustParse(t, `{"runs":[{"stats":{"tests":"5","passes":null,"failures":true,"duration":{}}}]}`)
	assert.Equal(t, Summary{}, r.Summary())
}

func TestTotalIsNotCrossValidated(t *testing.T) {
	r := mustParse(t, `{"runs":[{"stats":{"tests":10},"tests":[{"title":["only one"]}]}]}`)
	assert.Equal(t, 10, r.Summary().Total)
	assert.Len(t, r.Tests(), 1)
}

func TestTestOutcomes(t *testing.T) {
	r, err := ReadNativeReport(filepath.Join("testdata", "results.json"))
	require.NoError(t, err)

	tests := r.Tests()
	require.Len(t, tests, 5)

	assert.Equal(t, TestOutcome{Name: "Suite > case", Status: "passed", Duration: 42}, tests[0])
	assert.Equal(t, TestOutcome{
		Name:     "BTCWallet Service E2E Tests > should return first wallet",
		Status:   "failed",
		Duration: 310,
		Error:    "expected 500 to equal 200",
	}, tests[1])
	assert.Equal(t, TestOutcome{Name: "Unknown Test", Status: "unknown", Duration: 0}, tests[2])
	assert.Equal(t, "Unknown Test", tests[3].Name)
	assert.Equal(t, "pending", tests[3].Status)
	assert.Equal(t, map[string]interface{}{"name": "AssertionError", "message": "boom"}, tests[3].Error)
	assert.Equal(t, TestOutcome{Name: "a >  > 3", Status: "passed", Duration: 7.5}, tests[4])
}

func TestStringTitleIsUsedAsName(t *testing.T) {
	r := mustParse(t, `{"runs":[{"tests":[{"title":"flat title"}]}]}`)
	assert.Equal(t, "flat title", r.Tests()[0].Name)
}

func TestConvertReport(t *testing.T) {
	r := mustParse(t, `{"runs":[{"stats":{"tests":1,"passes":1,"duration":42},"tests":[{"title":["Suite","case"],"state":"passed","duration":42}]}]}`)
	converted := fixedConverter().ConvertReport(r)

	assert.Equal(t, TestRun{
		Timestamp:   "2026-10-19T08:30:00.123Z",
		Framework:   "cypress",
		Version:     "13.6.0",
		Environment: "qa",
	}, converted.TestRun)
	assert.Equal(t, Summary{Total: 1, Passed: 1, Duration: 42}, converted.Summary)
	assert.JSONEq(t, string(r.Raw()), string(converted.Metadata.CypressResults))
}

func TestConvertWritesPrettyJSON(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "converted.json")
	require.NoError(t, os.WriteFile(output, []byte("stale contents that are longer than nothing"), 0o644))

	_, err := fixedConverter().Convert(filepath.Join("testdata", "results.json"), output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"test_run\": {\n    \"timestamp\": \"2026-10-19T08:30:00.123Z\",")
	assert.Contains(t, string(data), `"name": "Suite > case"`)
	assert.Contains(t, string(data), `"error": null`)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, map[string]interface{}{
		"total": 5.0, "passed": 4.0, "failed": 1.0, "skipped": 0.0, "duration": 1200.0,
	}, decoded["summary"])

	metadata := decoded["metadata"].(map[string]interface{})
	original, err := os.ReadFile(filepath.Join("testdata", "results.json"))
	require.NoError(t, err)
	embedded, err := json.Marshal(metadata["cypress_results"])
	require.NoError(t, err)
	assert.JSONEq(t, string(original), string(embedded))
}

func TestConvertIsIdempotentExceptTimestamp(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")

	c := NewConverter("qa")
	_, err := c.Convert(filepath.Join("testdata", "results.json"), first)
	require.NoError(t, err)
	c.Now = func() time.Time { return time.Now().Add(time.Hour) }
	_, err = c.Convert(filepath.Join("testdata", "results.json"), second)
	require.NoError(t, err)

	extract := func(path string) (string, string) {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var doc map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &doc))
		return string(doc["summary"]), string(doc["tests"])
	}
	s1, t1 := extract(first)
	s2, t2 := extract(second)
	assert.Equal(t, s1, s2)
	assert.Equal(t, t1, t2)
}

func TestConvertMissingInput(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "converted.json")

	_, err := Convert(filepath.Join(dir, "nope.json"), output)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReportNotFound))
	assert.NoFileExists(t, output)
}

func TestConvertMalformedInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "results.json")
	output := filepath.Join(dir, "converted.json")
	require.NoError(t, os.WriteFile(input, []byte(`{"runs": [`), 0o644))

	_, err := Convert(input, output)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrReportNotFound))
	assert.Contains(t, err.Error(), "malformed report JSON")
	assert.NoFileExists(t, output)
}
