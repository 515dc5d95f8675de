package framework

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	started  []string
	finished []string
	skipped  []string
	errors   []string
}

func (r *recordingTestLogger) TestStarted(id TestID) { r.started = append(r.started, id.String()) }
func (r *recordingTestLogger) TestError(id TestID, err error) {
	r.errors = append(r.errors, id.String()+": "+err.Error())
}
func (r *recordingTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	r.finished = append(r.finished, id.String())
}
func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.skipped = append(r.skipped, id.String()+" ("+reason+")")
}

func TestRunCollectsResults(t *testing.T) {
	logger := &recordingTestLogger{}
	results := Run(nil, logger, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.Run("passes", func(c *Context) {})
			c.Run("fails", func(c *Context) {
				assert.Equal(c, 1, 2)
			})
		})
	})

	assert.False(t, results.OK())
	assert.Len(t, results.Tests, 3)
	require.Len(t, results.Failures, 1)
	assert.Equal(t, []string{"a", "fails"}, results.Failures[0].TestID.Path)
	assert.True(t, results.Failed("a", "fails"))
	assert.False(t, results.Failed("a", "passes"))
	assert.Equal(t, []string{"a", "a/passes", "a/fails"}, logger.started)
	require.Len(t, logger.errors, 1)
	assert.True(t, strings.HasPrefix(logger.errors[0], "a/fails: "))
	assert.NotContains(t, logger.errors[0], "Error Trace:")
}

func TestFailNowStopsTest(t *testing.T) {
	reachedEnd := false
	results := Run(nil, nil, func(c *Context) {
		c.Run("stops", func(c *Context) {
			require.True(c, false)
			reachedEnd = true
		})
	})
	assert.False(t, reachedEnd)
	assert.True(t, results.Failed("stops"))
}

func TestFailNowWithoutMessage(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("silent", func(c *Context) {
			c.FailNow()
		})
	})
	require.Len(t, results.Failures, 1)
	require.Len(t, results.Failures[0].Errors, 1)
	assert.Equal(t, "test failed with no failure message", results.Failures[0].Errors[0].Error())
}

func TestPanicIsReportedAsFailure(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("panics", func(c *Context) {
			panic(errors.New("boom"))
		})
		c.Run("next", func(c *Context) {})
	})
	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "unexpected panic in test: boom")
	_, ok := results.Find("next")
	assert.True(t, ok)
}

func TestSkip(t *testing.T) {
	logger := &recordingTestLogger{}
	results := Run(nil, logger, func(c *Context) {
		c.Run("skipped", func(c *Context) {
			c.SkipWithReason("not today")
		})
	})
	assert.True(t, results.OK())
	r, ok := results.Find("skipped")
	require.True(t, ok)
	assert.True(t, r.Skipped)
	assert.Equal(t, []string{"skipped (not today)"}, logger.skipped)
}

func TestFilterExcludesTests(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("^b"))
	ran := map[string]bool{}
	Run(filters.AsFilter, nil, func(c *Context) {
		for _, name := range []string{"a", "b"} {
			name := name
			c.Run(name, func(c *Context) { ran[name] = true })
		}
	})
	assert.Equal(t, map[string]bool{"a": true}, ran)
}

func TestDeferRunsInReverseOrderAfterFailure(t *testing.T) {
	var calls []string
	results := Run(nil, nil, func(c *Context) {
		c.Run("deferred", func(c *Context) {
			c.Defer(func() { calls = append(calls, "first") })
			c.Defer(func() { calls = append(calls, "second") })
			c.FailNow()
		})
	})
	assert.Equal(t, []string{"second", "first"}, calls)
	assert.True(t, results.Failed("deferred"))
}

func TestDebugOutputIsPassedToLogger(t *testing.T) {
	var output CapturedOutput
	logger := &capturingFinishLogger{onFinish: func(o CapturedOutput) { output = o }}
	Run(nil, logger, func(c *Context) {
		c.Run("debug", func(c *Context) {
			c.Debug("hello %s", "there")
		})
	})
	require.Len(t, output, 1)
	assert.Equal(t, "hello there", output[0].Message)
}

type capturingFinishLogger struct {
	nullTestLogger
	onFinish func(CapturedOutput)
}

func (c *capturingFinishLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	c.onFinish(debugOutput)
}
