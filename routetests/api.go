package routetests

import (
	"os"
	"strconv"

	"github.com/routecontract/route-contract-tests/framework/suite"
)

// EnvAuthorization is the environment variable that OptionsFromEnv reads an Authorization
// header value from.
const EnvAuthorization = "ROUTE_TESTS_AUTHORIZATION"

// EnvCloseServerAfterGroup is the environment variable that OptionsFromEnv reads
// CloseServerAfterGroup from.
const EnvCloseServerAfterGroup = "ROUTE_TESTS_CLOSE_SERVER_AFTER_GROUP"

// Options configures an API.
type Options struct {
	// Authorization, if not empty, is sent as the Authorization header of every request.
	// Route headers and bearer tokens take precedence over it.
	Authorization string

	// CloseServerAfterGroup closes a route's server after the route's suite group finishes.
	// Later routes that use the same server will fail unless the server can restart itself,
	// as the accessor returned by Autorun does.
	CloseServerAfterGroup bool
}

// OptionsFromEnv reads Options from environment variables.
func OptionsFromEnv() Options {
	closeAfter, _ := strconv.ParseBool(os.Getenv(EnvCloseServerAfterGroup))
	return Options{
		Authorization:         os.Getenv(EnvAuthorization),
		CloseServerAfterGroup: closeAfter,
	}
}

// API declares route tests. It holds the default modifiers and the stack of servers, path
// prefixes and modifiers of the declarations that are in progress.
//
// Declarations must be made from a single goroutine; the tests they produce can be run later
// from any goroutine.
type API struct {
	options  Options
	defaults ModifierChain
	stack    *scopeStack
}

// New creates an API.
func New(options Options) *API {
	return &API{options: options, stack: &scopeStack{}}
}

// AddModifier adds a modifier that applies to every route declared after this call, before
// any modifiers from the declarations themselves.
func (a *API) AddModifier(m Modifier) error {
	if m == nil {
		return configErrorf("AddModifier must be called with a function")
	}
	a.defaults = a.defaults.With(m)
	return nil
}

// Scope returns a Scope that declares routes in group.
func (a *API) Scope(group *suite.Group) *Scope {
	return &Scope{api: a, group: group}
}

// Describe declares routes in group. See Scope.Describe.
func (a *API) Describe(group *suite.Group, opts ...Option) error {
	return a.Scope(group).Describe(opts...)
}

// DescribeConfig declares routes in group. See Scope.DescribeConfig.
func (a *API) DescribeConfig(group *suite.Group, config Config) error {
	return a.Scope(group).DescribeConfig(config)
}

// Depth returns the number of frames on each of the API's stacks.
func (a *API) Depth() StackDepth {
	return a.stack.depth()
}
