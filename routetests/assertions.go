package routetests

import (
	"fmt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// RequireStatus fails the test immediately if the response status is not expected.
//
// If the server sent a body along with an unexpected status, the failure shows the body
// first, since that is usually an error message that explains the status.
func RequireStatus(t require.TestingT, res *Response, expected int) {
	if res.Status == expected {
		return
	}
	if diagnostic := responseDiagnostic(res); diagnostic != "" {
		require.Fail(t, "unexpected status",
			"expected status %d but got %d; server responded with: %s", expected, res.Status, diagnostic)
	}
	require.Equal(t, expected, res.Status, "unexpected status")
}

func responseDiagnostic(res *Response) string {
	if res.Body.Type() == ldvalue.ObjectType && res.Body.Count() > 0 {
		return res.Body.JSONString()
	}
	if res.Body.Type() != ldvalue.ObjectType && !res.Body.IsNull() {
		return res.Body.JSONString()
	}
	return res.Text
}

// AssertSubset checks that expected is a structural subset of actual, as defined by
// MatchSubset.
func AssertSubset(t assert.TestingT, actual, expected ldvalue.Value, msgAndArgs ...interface{}) bool {
	ok, where := MatchSubset(actual, expected)
	if ok {
		return true
	}
	return assert.Fail(t,
		fmt.Sprintf("response body does not contain expected value (first difference at %s)\n"+
			"expected subset: %s\nactual: %s", where, expected.JSONString(), actual.JSONString()),
		msgAndArgs...)
}

// assertExpectedBody compares a response to a route's expectation. A response that has no
// JSON body but does have text, such as a plain-text error message, is compared as text so
// that the message shows up in the failure.
func assertExpectedBody(t require.TestingT, res *Response, expected ldvalue.Value) {
	if isEmptyObject(res.Body) && res.Text != "" && res.Text != "{}" {
		if expected.Type() == ldvalue.StringType {
			assert.Equal(t, expected.StringValue(), res.Text, "unexpected response text")
		} else {
			assert.Equal(t, expected.JSONString(), res.Text, "response was not JSON")
		}
		return
	}
	AssertSubset(t, res.Body, expected)
}

func isEmptyObject(v ldvalue.Value) bool {
	return v.Type() == ldvalue.ObjectType && v.Count() == 0
}
