package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/btcwallet/e2e-tests/config"
	"github.com/btcwallet/e2e-tests/framework"
)

// runExternalRunner runs the configured test runner in place of the built-in suite. The runner
// inherits the harness's standard streams and gets the resolved service URLs in its
// environment, so it does not need its own defaults.
func runExternalRunner(cfg *config.Config, debugLogger framework.Logger) bool {
	var display commandBuilder
	display.add(cfg.RunnerCommand...)
	fmt.Printf("Running test runner: %s\n", display)

	cmd := exec.Command(cfg.RunnerCommand[0], cfg.RunnerCommand[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), runnerEnv(cfg)...)
	debugLogger.Printf("Runner environment: %v", runnerEnv(cfg))

	if err := cmd.Run(); err != nil {
		failedColor.Printf("Test runner failed: %s\n", err)
		return false
	}
	passedColor.Println("Test runner completed successfully")
	return true
}

func runnerEnv(cfg *config.Config) []string {
	return []string{
		"QUOTE_SERVICE_URL=" + cfg.QuoteServiceURL,
		"TRANSLATION_SERVICE_URL=" + cfg.TranslationServiceURL,
		"BTCWALLET_SERVICE_URL=" + cfg.BTCWalletServiceURL,
		"UI_SERVICE_URL=" + cfg.UIServiceURL,
		"REPORT_PATH=" + cfg.ReportPath,
	}
}
