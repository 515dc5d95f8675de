// Package framework contains the low-level implementation of test harness infrastructure
// that can be reused for different kinds of tests.
//
// The general model is:
//
// 1. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results.
//
// 2. Results are reported through a TestLogger as the tests run, and collected into a
// Results value at the end, so that a command-line runner or a Go test can decide what to
// do with them.
//
// The suite subpackage builds a declarative tree of groups, hooks and test cases on top of
// this; the routetests package builds route tests on top of that.
package framework
