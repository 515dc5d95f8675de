package suite

import (
	"testing"

	"github.com/routecontract/route-contract-tests/framework"
)

type goTestLogger struct {
	t testing.TB
}

func (l goTestLogger) TestStarted(framework.TestID) {}

func (l goTestLogger) TestError(id framework.TestID, err error) {
	l.t.Helper()
	l.t.Errorf("[%s] %s", id, err)
}

func (l goTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if !failed {
		return
	}
	for _, m := range debugOutput {
		l.t.Logf("[%s] DEBUG %s", id, m.Message)
	}
}

func (l goTestLogger) TestSkipped(id framework.TestID, reason string) {
	l.t.Logf("[%s] SKIPPED %s", id, reason)
}

// RunWithGoTest runs a group tree inside a Go test. Every failure in the tree is reported
// through t.Errorf, prefixed with the path of the failing test.
func RunWithGoTest(t testing.TB, root *Group) framework.Results {
	t.Helper()
	return Run(root, nil, goTestLogger{t: t})
}
