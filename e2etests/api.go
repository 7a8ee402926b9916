package e2etests

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/btcwallet/e2e-tests/config"
	"github.com/btcwallet/e2e-tests/framework"

	"github.com/PuerkitoBio/goquery"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultRequestTimeout = time.Second * 10

// Environment tells the suite where the services under test are.
type Environment struct {
	BTCWallet   framework.ServiceTarget
	UI          framework.ServiceTarget
	Quote       framework.ServiceTarget
	Translation framework.ServiceTarget

	// Client is used for every request made by a test. If nil, a client with a ten-second
	// timeout is used.
	Client *http.Client
}

// EnvironmentFromConfig returns the Environment described by the harness configuration.
func EnvironmentFromConfig(c *config.Config) Environment {
	return Environment{
		BTCWallet:   c.BTCWalletService(),
		UI:          c.UIService(),
		Quote:       c.QuoteService(),
		Translation: c.TranslationService(),
	}
}

// T represents a test or subtest in the end-to-end suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is outside
// of the Go test runner. Those features are provided by the lower-level framework package.
//
// To make test assertions, you can use the assert and require packages, passing the *T as if it were
// a *testing.T. The request helpers also fail the test immediately if a request cannot be made at
// all, to reduce the amount of boilerplate logic in tests.
type T struct {
	context *framework.Context
	env     *Environment
	client  *http.Client
}

func newTestScope(context *framework.Context, env *Environment) *T {
	client := env.Client
	if client == nil {
		client = &http.Client{Timeout: defaultRequestTimeout}
	}
	return &T{context: context, env: env, client: client}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Env returns the service locations for this run.
func (t *T) Env() Environment {
	return *t.env
}

// Response is a fully read HTTP response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Get issues a GET request for path on the target. The test fails and immediately exits if the
// request cannot be made; any HTTP status is returned to the caller to assert on.
func (t *T) Get(target framework.ServiceTarget, path string) Response {
	url := target.Resolve(path)
	t.Debug("GET %s", url)
	resp, err := t.client.Get(url)
	require.NoError(t, err, "request to %s failed", target.Name)
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err, "reading response from %s failed", target.Name)
	t.Debug("%s responded with status %d: %s", target.Name, resp.StatusCode, abbreviate(body))
	return Response{Status: resp.StatusCode, Header: resp.Header, Body: body}
}

// RequireStatus fails the test and exits immediately unless the response has the expected
// status.
func (r Response) RequireStatus(t *T, expected int) {
	require.Equal(t, expected, r.Status, "unexpected HTTP status")
}

// RequireJSON parses the body as JSON, failing the test immediately if it is not valid JSON.
func (r Response) RequireJSON(t *T) ldvalue.Value {
	var value ldvalue.Value
	require.NoError(t, json.Unmarshal(r.Body, &value), "response body was not valid JSON: %s", abbreviate(r.Body))
	return value
}

// RequireHTML parses the body as an HTML document.
func (r Response) RequireHTML(t *T) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
	require.NoError(t, err, "response body was not valid HTML")
	return doc
}

// AssertHasProperty checks that value is a JSON object containing the named property, whatever
// its value.
func AssertHasProperty(t *T, value ldvalue.Value, property string) bool {
	if value.Type() != ldvalue.ObjectType {
		return assert.Fail(t, "expected a JSON object", "got: %s", value.JSONString())
	}
	for _, k := range value.Keys() {
		if k == property {
			return true
		}
	}
	return assert.Fail(t, "missing property", "expected %s to have property %q", value.JSONString(), property)
}

// AssertVisible checks that the selection matched at least one element and that the first
// match is not hidden by a hidden attribute or an inline display:none.
func AssertVisible(t *T, sel *goquery.Selection, description string) bool {
	if sel.Length() == 0 {
		return assert.Fail(t, "element not found", "expected to find %s", description)
	}
	first := sel.First()
	if _, hidden := first.Attr("hidden"); hidden {
		return assert.Fail(t, "element is hidden", "%s has the hidden attribute", description)
	}
	style := strings.ReplaceAll(strings.ToLower(first.AttrOr("style", "")), " ", "")
	if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
		return assert.Fail(t, "element is hidden", "%s has style %q", description, first.AttrOr("style", ""))
	}
	return true
}

func abbreviate(body []byte) string {
	const max = 500
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
