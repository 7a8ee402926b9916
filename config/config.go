// Package config holds the harness configuration. It is read from the environment once at
// startup, optionally after loading .env files, and is not re-read during a run.
package config

import (
	"net/url"
	"os"
	"time"

	"github.com/btcwallet/e2e-tests/framework"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	QuoteServiceName       = "Quote Service"
	TranslationServiceName = "Translation Service"
	BTCWalletServiceName   = "BTCWallet Service"
	UIServiceName          = "BTCWallet UI"
)

type ProbeOptions struct {
	Retries         int           `env:"PROBE_RETRIES" envDefault:"30"`
	Interval        time.Duration `env:"PROBE_INTERVAL" envDefault:"2s"`
	Timeout         time.Duration `env:"PROBE_TIMEOUT" envDefault:"5s"`
	FailOnHTTPError bool          `env:"PROBE_FAIL_ON_HTTP_ERROR" envDefault:"true"`
}

// ReportOptions is the part of the configuration the report converter needs.
type ReportOptions struct {
	// Environment is the label written into converted reports.
	Environment string `env:"TEST_ENVIRONMENT" envDefault:"qa"`
}

type Config struct {
	QuoteServiceURL       string `env:"QUOTE_SERVICE_URL" envDefault:"http://quote-service:8080"`
	TranslationServiceURL string `env:"TRANSLATION_SERVICE_URL" envDefault:"http://translation-service:8000"`
	BTCWalletServiceURL   string `env:"BTCWALLET_SERVICE_URL" envDefault:"http://localhost:8001"`
	UIServiceURL          string `env:"UI_SERVICE_URL" envDefault:"http://localhost:8081"`

	Report ReportOptions
	Probe  ProbeOptions

	// RunnerCommand, when set, replaces the built-in suite with an external test runner process.
	RunnerCommand []string `env:"RUNNER_COMMAND" envSeparator:" "`
	ReportPath    string   `env:"REPORT_PATH" envDefault:"results/results.json"`
}

// LoadEnv loads whichever of envFiles exist into the process environment. Variables that are
// already set are not overridden. It returns the number of files loaded.
func LoadEnv(envFiles []string) (int, error) {
	existingFiles := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existingFiles = append(existingFiles, file)
		}
	}
	if len(existingFiles) == 0 {
		return 0, nil
	}
	if err := godotenv.Load(existingFiles...); err != nil {
		return 0, errors.Wrap(err, "loading env files")
	}
	return len(existingFiles), nil
}

// Load reads the configuration from the process environment after loading envFiles.
func Load(envFiles ...string) (*Config, error) {
	if _, err := LoadEnv(envFiles); err != nil {
		return nil, err
	}
	return parse(env.Options{})
}

// LoadReportOptions reads only the report options, so that the converter does not depend on
// the service URLs being valid.
func LoadReportOptions(envFiles ...string) (ReportOptions, error) {
	var opts ReportOptions
	if _, err := LoadEnv(envFiles); err != nil {
		return opts, err
	}
	if err := env.Parse(&opts); err != nil {
		return opts, errors.Wrap(err, "parsing environment")
	}
	return opts, nil
}

// FromMap reads the configuration from the given variables only.
func FromMap(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	c := &Config{}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return nil, errors.Wrap(err, "parsing environment")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	for name, value := range map[string]string{
		"QUOTE_SERVICE_URL":       c.QuoteServiceURL,
		"TRANSLATION_SERVICE_URL": c.TranslationServiceURL,
		"BTCWALLET_SERVICE_URL":   c.BTCWalletServiceURL,
		"UI_SERVICE_URL":          c.UIServiceURL,
	} {
		u, err := url.Parse(value)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", name)
		}
		if u.Scheme == "" || u.Host == "" {
			return errors.Errorf("invalid %s %q: must be an absolute URL", name, value)
		}
	}
	if c.Probe.Retries < 1 {
		return errors.Errorf("PROBE_RETRIES must be at least 1, got %d", c.Probe.Retries)
	}
	if c.Probe.Interval < 0 {
		return errors.Errorf("PROBE_INTERVAL must not be negative, got %s", c.Probe.Interval)
	}
	if c.ReportPath == "" {
		return errors.New("REPORT_PATH must not be empty")
	}
	return nil
}

func (c *Config) QuoteService() framework.ServiceTarget {
	return framework.ServiceTarget{Name: QuoteServiceName, BaseURL: c.QuoteServiceURL, HealthPath: "/actuator/health"}
}

func (c *Config) TranslationService() framework.ServiceTarget {
	return framework.ServiceTarget{Name: TranslationServiceName, BaseURL: c.TranslationServiceURL, HealthPath: "/health"}
}

func (c *Config) BTCWalletService() framework.ServiceTarget {
	return framework.ServiceTarget{Name: BTCWalletServiceName, BaseURL: c.BTCWalletServiceURL, HealthPath: "/actuator/health"}
}

func (c *Config) UIService() framework.ServiceTarget {
	return framework.ServiceTarget{Name: UIServiceName, BaseURL: c.UIServiceURL, HealthPath: "/"}
}
