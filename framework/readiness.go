package framework

import (
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultProbeRetries  = 30
	DefaultProbeInterval = time.Second * 2
	defaultProbeTimeout  = time.Second * 5
)

// ServiceTarget describes where and how to probe a service under test.
type ServiceTarget struct {
	Name       string
	BaseURL    string
	HealthPath string
}

// URL returns the full health-check URL of the target.
func (s ServiceTarget) URL() string {
	return s.Resolve(s.HealthPath)
}

// Resolve returns the URL of an arbitrary path on the target.
func (s ServiceTarget) Resolve(path string) string {
	base := strings.TrimSuffix(s.BaseURL, "/")
	if path == "" {
		return base
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

func (s ServiceTarget) String() string {
	return fmt.Sprintf("%s at %s", s.Name, s.URL())
}

// Poller waits for services to become reachable. The zero value is usable: unset fields fall
// back to DefaultProbeRetries, DefaultProbeInterval, a client with a short timeout, and no
// output.
type Poller struct {
	Client   *http.Client
	Retries  int
	Interval time.Duration
	// FailOnHTTPError makes a response with status 400 or higher count as "not ready". When it
	// is false any response at all is enough.
	FailOnHTTPError bool
	Output          io.Writer
	Logger          Logger

	sleep func(time.Duration)
}

// WaitForService probes the target with a default Poller.
func WaitForService(target ServiceTarget) bool {
	return Poller{}.WaitForService(target)
}

// WaitForService issues GET requests to the target's health URL until one succeeds or the
// retry budget is used up. Failed probes are the expected "not ready yet" signal, so they are
// never returned as errors; the only failure result is false.
func (p Poller) WaitForService(target ServiceTarget) bool {
	retries := p.Retries
	if retries <= 0 {
		retries = DefaultProbeRetries
	}
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	client := p.Client
	if client == nil {
		client = &http.Client{Timeout: defaultProbeTimeout}
	}
	out := p.Output
	if out == nil {
		out = ioutil.Discard
	}
	logger := PrefixedLogger(p.Logger, "["+target.Name+"] ")
	sleep := p.sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	fmt.Fprintf(out, "Waiting for %s...\n", target)
	ready := RetryWithFixedDelay(retries, interval, sleep, func(attempt int) bool {
		err := p.probe(client, target.URL())
		if err == nil {
			return true
		}
		logger.Printf("Probe of %s failed: %s", target.URL(), err)
		if attempt < retries {
			fmt.Fprintf(out, "  Attempt %d/%d - %s not ready yet, retrying in %s...\n",
				attempt, retries, target.Name, interval)
		}
		return false
	})
	if ready {
		fmt.Fprintf(out, "%s is ready\n", target.Name)
	} else {
		fmt.Fprintf(out, "%s failed to start after %d attempts\n", target.Name, retries)
	}
	return ready
}

func (p Poller) probe(client *http.Client, url string) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	if resp.Body != nil {
		_, _ = io.Copy(ioutil.Discard, resp.Body)
		_ = resp.Body.Close()
	}
	if p.FailOnHTTPError && resp.StatusCode >= 400 {
		return fmt.Errorf("service returned HTTP %d", resp.StatusCode)
	}
	return nil
}

// RetryWithFixedDelay calls attempt up to attempts times, numbering calls from 1, and sleeps
// for delay between consecutive calls. It returns true as soon as an attempt succeeds; no
// sleep follows the final attempt.
func RetryWithFixedDelay(attempts int, delay time.Duration, sleep func(time.Duration), attempt func(n int) bool) bool {
	if sleep == nil {
		sleep = time.Sleep
	}
	for n := 1; n <= attempts; n++ {
		if attempt(n) {
			return true
		}
		if n < attempts {
			sleep(delay)
		}
	}
	return false
}
