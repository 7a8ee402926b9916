package framework

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closedServerURL() string {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	url := server.URL
	server.Close()
	return url
}

func TestServiceTargetURL(t *testing.T) {
	target := ServiceTarget{Name: "Quote Service", BaseURL: "http://quote-service:8080/", HealthPath: "/actuator/health"}
	assert.Equal(t, "http://quote-service:8080/actuator/health", target.URL())
	assert.Equal(t, "http://quote-service:8080/api/x", target.Resolve("api/x"))
	assert.Equal(t, "http://quote-service:8080", target.Resolve(""))
}

func TestRetryWithFixedDelayStopsAtFirstSuccess(t *testing.T) {
	var calls []int
	var sleeps int
	ok := RetryWithFixedDelay(5, time.Second, func(time.Duration) { sleeps++ }, func(n int) bool {
		calls = append(calls, n)
		return n == 3
	})
	assert.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, calls)
	assert.Equal(t, 2, sleeps)
}

func TestRetryWithFixedDelayExhaustsBudget(t *testing.T) {
	var calls, sleeps int
	var delays []time.Duration
	ok := RetryWithFixedDelay(4, time.Millisecond*7, func(d time.Duration) {
		sleeps++
		delays = append(delays, d)
	}, func(int) bool {
		calls++
		return false
	})
	assert.False(t, ok)
	assert.Equal(t, 4, calls)
	assert.Equal(t, 3, sleeps)
	for _, d := range delays {
		assert.Equal(t, time.Millisecond*7, d)
	}
}

func TestPollerReturnsTrueForReachableService(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		var out bytes.Buffer
		p := Poller{Retries: 3, Interval: time.Millisecond, Output: &out}
		assert.True(t, p.WaitForService(ServiceTarget{Name: "svc", BaseURL: server.URL, HealthPath: "/health"}))
		require.Equal(t, 1, len(requestsCh))
		req := <-requestsCh
		assert.Equal(t, "GET", req.Request.Method)
		assert.Equal(t, "/health", req.Request.URL.Path)
		assert.Contains(t, out.String(), "svc is ready")
	})
}

func TestPollerIgnoresStatusCodeByDefault(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(503), func(server *httptest.Server) {
		p := Poller{Retries: 2, Interval: time.Millisecond}
		assert.True(t, p.WaitForService(ServiceTarget{Name: "svc", BaseURL: server.URL}))
	})
}

func TestPollerFailOnHTTPErrorRetriesUntilSuccess(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.SequentialHandler(
		httphelpers.HandlerWithStatus(503),
		httphelpers.HandlerWithStatus(503),
		httphelpers.HandlerWithStatus(200),
	))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		var sleeps int
		p := Poller{Retries: 10, Interval: time.Second, FailOnHTTPError: true}
		p.sleep = func(time.Duration) { sleeps++ }
		assert.True(t, p.WaitForService(ServiceTarget{Name: "svc", BaseURL: server.URL, HealthPath: "/health"}))
		assert.Equal(t, 3, len(requestsCh))
		assert.Equal(t, 2, sleeps)
	})
}

func TestPollerGivesUpAfterRetries(t *testing.T) {
	var out bytes.Buffer
	var sleeps int
	p := Poller{Retries: 4, Interval: time.Second, Output: &out}
	p.sleep = func(time.Duration) { sleeps++ }

	ready := p.WaitForService(ServiceTarget{Name: "Translation Service", BaseURL: closedServerURL(), HealthPath: "/health"})

	assert.False(t, ready)
	assert.Equal(t, 3, sleeps)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[1], "Attempt 1/4 - Translation Service not ready yet")
	assert.Contains(t, lines[3], "Attempt 3/4")
	assert.Equal(t, "Translation Service failed to start after 4 attempts", lines[4])
}

func TestPollerElapsedTimeCoversAllIntervals(t *testing.T) {
	p := Poller{Retries: 3, Interval: time.Millisecond * 20}
	started := time.Now()
	assert.False(t, p.WaitForService(ServiceTarget{Name: "svc", BaseURL: closedServerURL()}))
	assert.GreaterOrEqual(t, int64(time.Since(started)), int64(time.Millisecond*40))
}

func TestPollerLogsTransportErrors(t *testing.T) {
	var logger CapturingLogger
	p := Poller{Retries: 2, Interval: time.Millisecond, Logger: &logger}
	assert.False(t, p.WaitForService(ServiceTarget{Name: "svc", BaseURL: closedServerURL()}))
	require.Len(t, logger.Output(), 2)
	assert.Contains(t, logger.Output().Messages()[0], "[svc] Probe of")
}

func TestPollerUsesProvidedClient(t *testing.T) {
	client := &http.Client{Timeout: time.Millisecond * 50}
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Millisecond * 300)
		w.WriteHeader(200)
	})
	httphelpers.WithServer(slow, func(server *httptest.Server) {
		p := Poller{Client: client, Retries: 1, Interval: time.Millisecond}
		assert.False(t, p.WaitForService(ServiceTarget{Name: "svc", BaseURL: server.URL}))
	})
}
