package routetests

import (
	"github.com/routecontract/route-contract-tests/framework/suite"
)

// Phase identifies when a route hook runs.
type Phase int

const (
	// BeforeRequest hooks run after the route has been resolved and modified, before the
	// request is sent. They receive a nil response.
	BeforeRequest Phase = iota

	// BeforeAssertions hooks run after the response has been received, before any test case
	// of the route.
	BeforeAssertions

	// AfterRoute hooks run after all test cases of the route.
	AfterRoute

	phaseCount
)

func (p Phase) String() string {
	switch p {
	case BeforeRequest:
		return "BeforeRequest"
	case BeforeAssertions:
		return "BeforeAssertions"
	case AfterRoute:
		return "AfterRoute"
	default:
		return "unknown phase"
	}
}

// routeState is shared between a route's setup, its hooks and its test cases.
type routeState struct {
	hooks    [phaseCount][]HookFunc
	server   Server
	executed *ResolvedRoute
}

func (s *routeState) runHooks(phase Phase, res *Response, route *ResolvedRoute) error {
	for _, h := range s.hooks[phase] {
		if err := h(res, route); err != nil {
			return err
		}
	}
	return nil
}

// RouteScope is passed to a route's Describe function so that it can add test cases and hooks
// for that route. Test cases declared through it receive the route's response and resolved
// route.
//
// A RouteScope can only be used while Describe is running. Calling any of its methods later
// panics with a *ConfigError.
type RouteScope struct {
	name   string
	group  *suite.Group
	state  *routeState
	closed bool
}

// Name returns the display name of the route.
func (r *RouteScope) Name() string {
	return r.name
}

// BeforeRoute adds a hook that runs once the response is available, before any test case.
// Only one such hook can be added per route.
func (r *RouteScope) BeforeRoute(fn HookFunc) {
	r.AddHook(BeforeAssertions, fn)
}

// AfterRoute adds a hook that runs after all of the route's test cases. Any number of these
// can be added; they run in the order they were added.
func (r *RouteScope) AfterRoute(fn HookFunc) {
	r.AddHook(AfterRoute, fn)
}

// AddHook adds a hook for the specified phase. The BeforeRequest and BeforeAssertions phases
// accept one hook each from a RouteScope.
func (r *RouteScope) AddHook(phase Phase, fn HookFunc) {
	r.requireOpen("AddHook")
	if phase < 0 || phase >= phaseCount {
		panic(configErrorf("invalid hook phase %d for route %q", phase, r.name))
	}
	if fn == nil {
		panic(configErrorf("nil %s hook for route %q", phase, r.name))
	}
	if phase != AfterRoute && len(r.state.hooks[phase]) > 0 {
		panic(configErrorf("route %q already has a %s hook", r.name, phase))
	}
	r.state.hooks[phase] = append(r.state.hooks[phase], fn)
}

// It adds a test case to the route.
func (r *RouteScope) It(name string, fn CaseFunc) {
	r.requireOpen("It")
	if fn == nil {
		panic(configErrorf("nil test case %q for route %q", name, r.name))
	}
	r.group.It(name, routeCase(r.state, fn))
}

// AddCase is the same as It.
func (r *RouteScope) AddCase(name string, fn CaseFunc) {
	r.It(name, fn)
}

func (r *RouteScope) requireOpen(method string) {
	if r.closed {
		panic(configErrorf("%s called outside of route context (route %q)", method, r.name))
	}
}

// routeCase adapts a CaseFunc to the suite, passing it the result of the route's setup.
func routeCase(state *routeState, fn CaseFunc) suite.CaseFunc {
	return func(t *suite.T) {
		fn(t, state.executed.Response, state.executed)
	}
}

// runDescribe calls a route's Describe function with an open scope, and closes the scope
// afterward. A *ConfigError panic from misuse of the scope is returned as an error.
func runDescribe(describe func(*RouteScope), scope *RouteScope) (err error) {
	defer func() {
		scope.closed = true
	}()
	defer func() {
		if r := recover(); r != nil {
			if ce, ok := r.(*ConfigError); ok {
				err = ce
				return
			}
			panic(r)
		}
	}()
	describe(scope)
	return nil
}
