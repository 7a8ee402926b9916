package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/btcwallet/e2e-tests/config"
	"github.com/btcwallet/e2e-tests/e2etests"
	"github.com/btcwallet/e2e-tests/framework"
	"github.com/btcwallet/e2e-tests/logging"
	"github.com/btcwallet/e2e-tests/report"

	"github.com/sirupsen/logrus"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	var params commandParams
	if !params.Read(args) {
		return exitFailure
	}

	logger := logging.NewLogger(os.Stderr, logging.DebugLevel(params.debugAll))
	debugLogger := logging.DebugPrinter(logger)

	cfg, err := config.Load(params.envFiles...)
	if err != nil {
		logger.WithError(err).Error("Invalid configuration")
		return exitFailure
	}

	fmt.Println("Starting end-to-end tests")
	fmt.Println("Test configuration:")
	fmt.Printf("  Quote Service URL: %s\n", cfg.QuoteServiceURL)
	fmt.Printf("  Translation Service URL: %s\n", cfg.TranslationServiceURL)
	fmt.Println()

	poller := framework.Poller{
		Client:          &http.Client{Timeout: cfg.Probe.Timeout},
		Retries:         cfg.Probe.Retries,
		Interval:        cfg.Probe.Interval,
		FailOnHTTPError: cfg.Probe.FailOnHTTPError,
		Output:          os.Stdout,
		Logger:          debugLogger,
	}

	quoteReady := poller.WaitForService(cfg.QuoteService())
	translationReady := poller.WaitForService(cfg.TranslationService())
	if !quoteReady || !translationReady {
		failedColor.Println("Services failed to start")
		return exitFailure
	}
	passedColor.Println("All services are ready")
	fmt.Println()

	var ok bool
	if len(cfg.RunnerCommand) > 0 {
		ok = runExternalRunner(cfg, debugLogger)
	} else {
		ok = runBuiltInSuite(cfg, params, poller)
	}

	printReportSummary(cfg.ReportPath)
	if !ok {
		return exitFailure
	}
	return exitSuccess
}

func runBuiltInSuite(cfg *config.Config, params commandParams, poller framework.Poller) bool {
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")
	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	started := time.Now()
	results, err := e2etests.RunTestSuite(e2etests.EnvironmentFromConfig(cfg), poller, params.filters.AsFilter, testLogger)
	ended := time.Now()
	if err != nil {
		failedColor.Printf("Test run aborted: %s\n", err)
		return false
	}

	if err := report.WriteNativeReport(cfg.ReportPath, report.NewNativeReport(results, started, ended)); err != nil {
		fmt.Fprintf(os.Stderr, "Could not write test report: %s\n", err)
		return false
	}

	fmt.Println()
	printResults(results)
	return results.OK()
}

func printResults(results framework.Results) {
	leaves := results.Leaves()
	if results.OK() {
		passedColor.Printf("All tests passed (%d)\n", len(leaves))
		return
	}
	failedColor.Printf("FAILED TESTS (%d of %d):\n", len(results.Failures), len(leaves))
	for _, f := range results.Failures {
		fmt.Printf("  * %s\n", f.TestID)
	}
}

func printReportSummary(path string) {
	native, err := report.ReadNativeReport(path)
	if err != nil {
		if !errors.Is(err, report.ErrReportNotFound) {
			logrus.WithError(err).WithField("path", path).Warn("Could not read test report")
		}
		return
	}
	fmt.Println()
	report.PrintSummary(os.Stdout, "Test Summary", native.Summary())
}
