package report

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// ErrReportNotFound is returned when the native report file does not exist.
var ErrReportNotFound = errors.New("report not found")

const (
	unknownTestName   = "Unknown Test"
	unknownTestStatus = "unknown"
	titleSeparator    = " > "
)

// NativeReport is the test runner's own JSON report. Apart from the first run's stats and
// tests it is treated as opaque; the original bytes are kept so they can be embedded in a
// converted report unchanged.
type NativeReport struct {
	raw   json.RawMessage
	value ldvalue.Value
}

// ReadNativeReport reads and parses the report at path.
func ReadNativeReport(path string) (NativeReport, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NativeReport{}, errors.Wrap(ErrReportNotFound, path)
		}
		return NativeReport{}, errors.Wrapf(err, "reading %s", path)
	}
	r, err := ParseNativeReport(data)
	if err != nil {
		return NativeReport{}, errors.Wrapf(err, "parsing %s", path)
	}
	return r, nil
}

// ParseNativeReport parses a report from JSON. Any well-formed JSON document is accepted.
func ParseNativeReport(data []byte) (NativeReport, error) {
	var value ldvalue.Value
	if err := json.Unmarshal(data, &value); err != nil {
		return NativeReport{}, errors.Wrap(err, "malformed report JSON")
	}
	return NativeReport{
		raw:   append(json.RawMessage(nil), data...),
		value: value,
	}, nil
}

// Raw returns the original JSON of the report.
func (r NativeReport) Raw() json.RawMessage {
	if len(r.raw) == 0 {
		return json.RawMessage("null")
	}
	return r.raw
}

// firstRun returns runs[0], or a null value if the report has no runs.
func (r NativeReport) firstRun() ldvalue.Value {
	runs := r.value.GetByKey("runs")
	if runs.Type() != ldvalue.ArrayType || runs.Count() == 0 {
		return ldvalue.Null()
	}
	return runs.GetByIndex(0)
}

// Summary returns the aggregate counters of the first run. Missing or non-numeric counters are
// zero. The total is taken from the stats as reported and is not checked against the number
// of tests.
func (r NativeReport) Summary() Summary {
	stats := r.firstRun().GetByKey("stats")
	return Summary{
		Total:    int(numberOrZero(stats.GetByKey("tests"))),
		Passed:   int(numberOrZero(stats.GetByKey("passes"))),
		Failed:   int(numberOrZero(stats.GetByKey("failures"))),
		Skipped:  int(numberOrZero(stats.GetByKey("skipped"))),
		Duration: numberOrZero(stats.GetByKey("duration")),
	}
}

// Tests returns one outcome per test of the first run, in report order.
func (r NativeReport) Tests() []TestOutcome {
	tests := r.firstRun().GetByKey("tests")
	ret := make([]TestOutcome, 0, tests.Count())
	if tests.Type() != ldvalue.ArrayType {
		return ret
	}
	for i := 0; i < tests.Count(); i++ {
		t := tests.GetByIndex(i)
		status := unknownTestStatus
		if state := t.GetByKey("state"); state.IsString() && state.StringValue() != "" {
			status = state.StringValue()
		}
		var testErr interface{}
		if e := t.GetByKey("error"); truthy(e) {
			testErr = e.AsArbitraryValue()
		}
		ret = append(ret, TestOutcome{
			Name:     testName(t.GetByKey("title")),
			Status:   status,
			Duration: numberOrZero(t.GetByKey("duration")),
			Error:    testErr,
		})
	}
	return ret
}

func testName(title ldvalue.Value) string {
	var name string
	switch title.Type() {
	case ldvalue.ArrayType:
		segments := make([]string, 0, title.Count())
		for i := 0; i < title.Count(); i++ {
			segments = append(segments, segmentString(title.GetByIndex(i)))
		}
		name = strings.Join(segments, titleSeparator)
	case ldvalue.StringType:
		name = title.StringValue()
	}
	if name == "" {
		return unknownTestName
	}
	return name
}

func segmentString(v ldvalue.Value) string {
	switch v.Type() {
	case ldvalue.NullType:
		return ""
	case ldvalue.StringType:
		return v.StringValue()
	default:
		return v.JSONString()
	}
}

func numberOrZero(v ldvalue.Value) float64 {
	if v.IsNumber() {
		return v.Float64Value()
	}
	return 0
}

func truthy(v ldvalue.Value) bool {
	switch v.Type() {
	case ldvalue.NullType:
		return false
	case ldvalue.BoolType:
		return v.BoolValue()
	case ldvalue.NumberType:
		return v.Float64Value() != 0
	case ldvalue.StringType:
		return v.StringValue() != ""
	default:
		return true
	}
}
