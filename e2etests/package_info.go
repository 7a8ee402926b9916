// Package e2etests contains the end-to-end checks themselves and their supporting API.
//
// Test harness infrastructure that is not specific to the services under test, such as the
// readiness poller and the test context, is in the lower-level framework package.
package e2etests
