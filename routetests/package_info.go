// Package routetests generates HTTP route tests from declarative route descriptions.
//
// A Route describes one request and its expected outcome. Routes are declared through an API,
// which keeps a stack of servers, path prefixes and route modifiers for nested declarations,
// and each route becomes one suite group: the group's setup resolves any deferred fields of
// the route, applies the modifier chain, sends the request and keeps the response for the
// group's test cases. Default test cases check the status code and, if an expectation was
// given, that the response body contains the expected structure.
//
// Test infrastructure that is not specific to routes, such as the test context and result
// reporting, is in the lower-level framework and framework/suite packages.
package routetests
