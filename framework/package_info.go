// Package framework contains the low-level test harness infrastructure used by the end-to-end
// suite.
//
// The general model is:
//
// 1. Each service under test is described by a ServiceTarget: a base URL plus the path of a
// cheap endpoint that answers once the service is up.
//
// 2. A Poller gates the run: it probes a target with a fixed number of attempts and a fixed
// delay between them, and reports readiness as a bool rather than an error.
//
// 3. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results. Context implements the testify TestingT interfaces, so the assert
// and require packages can be used directly inside tests.
//
// The domain-specific code that knows what is being tested is responsible for deciding which
// targets each group of tests requires and which requests to make.
package framework
