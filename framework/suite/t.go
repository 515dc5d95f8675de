package suite

import (
	"context"

	"github.com/routecontract/route-contract-tests/framework"
)

// T represents a test case or a group in a suite.
//
// It implements the same basic functionality as Go's testing.T, on top of the lower-level
// framework.Context. To make test assertions, use the assert and require packages, passing the
// *T as if it were a *testing.T.
type T struct {
	context *framework.Context
	ctx     context.Context
}

func newT(c *framework.Context, ctx context.Context) *T {
	return &T{context: c, ctx: ctx}
}

// Context returns the context.Context for blocking operations performed by the test.
func (t *T) Context() context.Context {
	return t.ctx
}

// ID returns the full identifier of the test.
func (t *T) ID() framework.TestID {
	return t.context.ID()
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Failed returns true if a failure has already been recorded for this test.
func (t *T) Failed() bool {
	return t.context.Failed()
}

// Skip stops the test and marks it as skipped.
func (t *T) Skip(reason string) {
	t.context.SkipWithReason(reason)
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newT(c, t.ctx))
	})
}

// Defer schedules a function to run when the test finishes.
func (t *T) Defer(cleanupFn func()) {
	t.context.Defer(cleanupFn)
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// DebugLogger returns the Logger that Debug writes to.
func (t *T) DebugLogger() framework.Logger {
	return t.context.DebugLogger()
}
