package framework

import "time"

// TestLogger receives progress notifications as the suite runs. TestError may be called any
// number of times between TestStarted and TestFinished; a test that is skipped gets
// TestSkipped instead of TestFinished.
type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestFinished(id TestID, failed bool, elapsed time.Duration, debugOutput CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                                       {}
func (n nullTestLogger) TestError(TestID, error)                                  {}
func (n nullTestLogger) TestFinished(TestID, bool, time.Duration, CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                               {}
