package framework

import (
	"errors"
	"fmt"
	"regexp"
	"runtime/debug"
	"strings"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context is the state of one node in a test tree. It is similar to Go's *testing.T, but it
// runs outside of the Go test runner so that results can be collected and reported however the
// caller wants.
//
// Context implements the Errorf and FailNow methods that the testify assert and require
// packages expect.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
	cleanups    []func()
}

// Run executes a test tree. The action receives the root Context, which has an empty TestID
// and is not itself reported as a test.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if !c.skipped {
				c.failed = true
				var addError error
				if _, ok := r.(*Context); ok {
					if len(c.errors) == 0 {
						addError = errors.New("test failed with no failure message")
					}
				} else {
					addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
				}
				if addError != nil {
					c.errors = append(c.errors, addError)
					c.env.testLogger.TestError(c.id, addError)
				}
			}
		}
		c.runCleanups()
		if len(c.id.Path) == 0 {
			return
		}
		result := TestResult{TestID: c.id, Errors: c.errors, Skipped: c.skipped}
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()

	action(c)
}

func (c *Context) runCleanups() {
	for len(c.cleanups) > 0 {
		n := len(c.cleanups) - 1
		f := c.cleanups[n]
		c.cleanups = c.cleanups[:n]
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.failed = true
					err := fmt.Errorf("unexpected panic in deferred function: %+v", r)
					c.errors = append(c.errors, err)
					c.env.testLogger.TestError(c.id, err)
				}
			}()
			f()
		}()
	}
}

// ID returns the identifier of this test.
func (c *Context) ID() TestID {
	return c.id
}

// Run runs a subtest with the specified name.
func (c *Context) Run(name string, action func(*Context)) {
	id := TestID{Path: append(append([]string(nil), c.id.Path...), name)}

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)
	if c1.skipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, c1.failed, c1.debugLogger.Output())
	}
}

// Errorf records a failure without stopping the test.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, reformatError(err))
}

// FailNow marks the test as failed and exits it immediately.
func (c *Context) FailNow() {
	c.failed = true
	panic(c)
}

// Failed returns true if any failure has been recorded for this test.
func (c *Context) Failed() bool {
	return c.failed
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Defer schedules a function to run when the test finishes, whether or not it passed. Deferred
// functions run in last-in-first-out order.
func (c *Context) Defer(cleanupFn func()) {
	c.cleanups = append(c.cleanups, cleanupFn)
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}

var errorTraceRegex = regexp.MustCompile(`(?s)^\s*Error Trace:.*?\n\s*Error:\s*`)

// reformatError strips the file/line trace that testify puts at the start of its messages,
// since those refer to assertion helpers rather than to anything useful in a route test.
func reformatError(err error) error {
	s := err.Error()
	if loc := errorTraceRegex.FindStringIndex(s); loc != nil {
		s = strings.TrimSpace(s[loc[1]:])
		return errors.New(s)
	}
	return err
}
