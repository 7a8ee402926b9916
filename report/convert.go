package report

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"time"

	"github.com/pkg/errors"
)

const (
	DefaultNativeReportPath    = "results/results.json"
	DefaultConvertedReportPath = "results-converted.json"

	DefaultFramework   = "cypress"
	DefaultVersion     = "13.6.0"
	DefaultEnvironment = "qa"

	timestampFormat = "2006-01-02T15:04:05.000Z07:00"
)

// ConvertedReport is the simplified report written for downstream consumers.
type ConvertedReport struct {
	TestRun  TestRun       `json:"test_run"`
	Summary  Summary       `json:"summary"`
	Tests    []TestOutcome `json:"tests"`
	Metadata Metadata      `json:"metadata"`
}

type TestRun struct {
	Timestamp   string `json:"timestamp"`
	Framework   string `json:"framework"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type Summary struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Skipped  int     `json:"skipped"`
	Duration float64 `json:"duration"`
}

// TestOutcome is one test of the converted report. Error is nil when the test reported no
// error, and otherwise holds the error exactly as the runner reported it.
type TestOutcome struct {
	Name     string      `json:"name"`
	Status   string      `json:"status"`
	Duration float64     `json:"duration"`
	Error    interface{} `json:"error"`
}

// Metadata carries the complete native report for traceability.
type Metadata struct {
	CypressResults json.RawMessage `json:"cypress_results"`
}

// Converter turns native reports into converted reports.
type Converter struct {
	Framework   string
	Version     string
	Environment string
	Now         func() time.Time
}

// NewConverter returns a Converter with the default framework and version labels.
func NewConverter(environment string) Converter {
	if environment == "" {
		environment = DefaultEnvironment
	}
	return Converter{
		Framework:   DefaultFramework,
		Version:     DefaultVersion,
		Environment: environment,
		Now:         time.Now,
	}
}

// Convert converts the report at nativePath with a default Converter.
func Convert(nativePath, outputPath string) (ConvertedReport, error) {
	return NewConverter(DefaultEnvironment).Convert(nativePath, outputPath)
}

// Convert reads the native report at nativePath and writes the converted report to outputPath,
// replacing any previous contents. Nothing is written if the input cannot be read or parsed.
func (c Converter) Convert(nativePath, outputPath string) (ConvertedReport, error) {
	native, err := ReadNativeReport(nativePath)
	if err != nil {
		return ConvertedReport{}, err
	}
	converted := c.ConvertReport(native)
	if err := WriteConvertedReport(outputPath, converted); err != nil {
		return ConvertedReport{}, err
	}
	return converted, nil
}

// ConvertReport converts an already parsed report.
func (c Converter) ConvertReport(native NativeReport) ConvertedReport {
	now := c.Now
	if now == nil {
		now = time.Now
	}
	return ConvertedReport{
		TestRun: TestRun{
			Timestamp:   now().UTC().Format(timestampFormat),
			Framework:   c.Framework,
			Version:     c.Version,
			Environment: c.Environment,
		},
		Summary:  native.Summary(),
		Tests:    native.Tests(),
		Metadata: Metadata{CypressResults: native.Raw()},
	}
}

// MarshalIndented encodes v as JSON indented by two spaces, without HTML escaping so that
// test names such as "Suite > case" are written as-is.
func MarshalIndented(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func WriteConvertedReport(path string, converted ConvertedReport) error {
	data, err := MarshalIndented(converted)
	if err != nil {
		return errors.Wrap(err, "encoding converted report")
	}
	if err := ioutil.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}
