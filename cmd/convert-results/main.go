// Command convert-results converts the test runner's native JSON report into the simplified
// report format. It takes no arguments: it reads results/results.json and writes
// results-converted.json, both relative to the working directory.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/btcwallet/e2e-tests/config"
	"github.com/btcwallet/e2e-tests/logging"
	"github.com/btcwallet/e2e-tests/report"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run(report.DefaultNativeReportPath, report.DefaultConvertedReportPath))
}

func run(nativePath, outputPath string) int {
	logger := logging.NewLogger(os.Stderr, logrus.InfoLevel)

	opts, err := config.LoadReportOptions(".env")
	if err != nil {
		logger.WithError(err).Error("Invalid configuration")
		return 1
	}

	converted, err := report.NewConverter(opts.Environment).Convert(nativePath, outputPath)
	if err != nil {
		if errors.Is(err, report.ErrReportNotFound) {
			logger.WithField("path", nativePath).Error("Test report not found")
		} else {
			logger.WithError(err).Error("Error converting results")
		}
		return 1
	}

	color.New(color.FgGreen).Println("Successfully converted test results")
	fmt.Printf("Output file: %s\n\n", outputPath)
	report.PrintSummary(os.Stdout, "Test Summary", converted.Summary)
	if len(converted.Tests) > 0 {
		fmt.Println()
		report.PrintTests(os.Stdout, converted.Tests)
	}
	return 0
}
