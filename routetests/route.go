package routetests

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/routecontract/route-contract-tests/framework/suite"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// EnvelopeKey is the property that Body and Expect values are nested under. A route with
// Body: x sends {"data": x}, and a route with Expect: y expects the response to contain
// {"data": y}. RawBody and RawExpect are used as they are.
const EnvelopeKey = "data"

const (
	defaultMethod = "GET"
	defaultStatus = 200
)

// HookFunc is a route lifecycle callback. For hooks that run before the request, res is nil.
// A returned error fails the setup of the route's suite group.
type HookFunc func(res *Response, route *ResolvedRoute) error

// CaseFunc is the body of a test case that was declared for a route. It receives the response
// and the resolved route without the test author having to keep track of them.
type CaseFunc func(t *suite.T, res *Response, route *ResolvedRoute)

// Route describes one HTTP request to test and its expected outcome.
//
// A Route is never modified by the tests that are generated from it; resolving its deferred
// fields produces a separate ResolvedRoute.
type Route struct {
	// Method is the HTTP method. The default is GET.
	Method string

	// Path is appended to the active path prefix. An empty path means "/".
	Path Dynamic[string]

	// Name is the display name of the route's suite group. The default is built from the
	// method, the full path and Note.
	Name string

	// Note is appended to the default display name.
	Note string

	// Status is the expected status code. The default is 200.
	Status int

	// Body is sent as {"data": Body}. It takes precedence over RawBody. Bodies are only
	// sent for methods other than GET and DELETE; if neither is set, {} is sent.
	Body Dynamic[interface{}]

	// RawBody is sent as it is.
	RawBody Dynamic[interface{}]

	// Headers are added to the request, and take precedence over all other headers.
	Headers Dynamic[map[string]string]

	// Bearer, if set, adds an "Authorization: Bearer ..." header unless Headers already
	// has an Authorization header.
	Bearer Dynamic[string]

	// Expect is compared to the response body as {"data": Expect}, using a subset match. It
	// takes precedence over RawExpect.
	Expect Dynamic[interface{}]

	// RawExpect is compared to the whole response body using a subset match.
	RawExpect Dynamic[interface{}]

	// ExpectPaths maps JSONPath expressions to values that the first match of the expression
	// in the response body must contain. Each entry becomes a test case.
	ExpectPaths map[string]interface{}

	// Describe, if set, can declare additional test cases and hooks for the route through
	// the RouteScope. The scope is only usable while Describe is running.
	Describe func(r *RouteScope)

	// Before runs after modifiers are applied and before the request is sent.
	Before HookFunc

	// After runs after all of the route's test cases.
	After HookFunc

	// Assert, if set, replaces the default test cases with one case that checks the status
	// and then calls Assert.
	Assert CaseFunc

	// Extra holds arbitrary fields for use by modifiers.
	Extra map[string]interface{}
}

// ResolvedRoute is a Route whose deferred fields have been replaced by their values. Absent
// fields have zero values: a nil Body, an empty Bearer, and so on.
type ResolvedRoute struct {
	Method      string
	Prefix      string
	Path        string
	Name        string
	Note        string
	Status      int
	Body        interface{}
	RawBody     interface{}
	Headers     map[string]string
	Bearer      string
	Expect      interface{}
	RawExpect   interface{}
	ExpectPaths map[string]interface{}
	Extra       map[string]interface{}

	// Response is set after the request has been sent.
	Response *Response
}

// FullPath returns the path prefix followed by the path.
func (r *ResolvedRoute) FullPath() string {
	return r.Prefix + r.Path
}

// RequestBody returns the value that is sent as the request body, if the method allows one.
func (r *ResolvedRoute) RequestBody() interface{} {
	if r.Body != nil {
		return map[string]interface{}{EnvelopeKey: r.Body}
	}
	if r.RawBody != nil {
		return r.RawBody
	}
	return map[string]interface{}{}
}

// Expected returns the value that the response body is compared against, and false if the
// route has no expectation. An expectation that cannot be encoded as JSON is a *ConfigError.
func (r *ResolvedRoute) Expected() (ldvalue.Value, bool, error) {
	if r.Expect != nil {
		v, err := jsonValue("expect", r.Expect)
		if err != nil {
			return ldvalue.Null(), false, err
		}
		return ldvalue.ObjectBuild().Set(EnvelopeKey, v).Build(), true, nil
	}
	if r.RawExpect != nil {
		v, err := jsonValue("raw expect", r.RawExpect)
		if err != nil {
			return ldvalue.Null(), false, err
		}
		return v, true, nil
	}
	return ldvalue.Null(), false, nil
}

// jsonValue converts a value through its JSON encoding, so that structs are compared the
// way they would be serialized.
func jsonValue(field string, value interface{}) (ldvalue.Value, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return ldvalue.Null(), configErrorf("%s value cannot be encoded as JSON: %s", field, err)
	}
	return ldvalue.Parse(data), nil
}

// Header returns a request header from Headers, matching the name case-insensitively.
func (r *ResolvedRoute) Header(name string) (string, bool) {
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

func (r *ResolvedRoute) clone() *ResolvedRoute {
	ret := *r
	ret.Headers = copyStringMap(r.Headers)
	ret.ExpectPaths = copyMap(r.ExpectPaths)
	ret.Extra = copyMap(r.Extra)
	return &ret
}

// Response is the captured result of a route's request.
type Response struct {
	Status int
	Header http.Header

	// Body is the parsed JSON body, or an empty object if the body was not JSON.
	Body ldvalue.Value

	// Text is the raw body.
	Text string

	Request RequestInfo
}

// RequestInfo describes the request that produced a Response.
type RequestInfo struct {
	Method string
	URL    string
	Path   string
	Header http.Header
	Body   []byte
}

func copyStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	ret := make(map[string]string, len(m))
	for k, v := range m {
		ret[k] = v
	}
	return ret
}

func copyMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	ret := make(map[string]interface{}, len(m))
	for k, v := range m {
		ret[k] = v
	}
	return ret
}
