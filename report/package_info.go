// Package report reads the test runner's native JSON report and converts it into the
// simplified report consumed downstream. It also writes native reports for runs of the
// built-in suite.
package report
