package routetests

import (
	"errors"
	"fmt"

	"github.com/routecontract/route-contract-tests/framework/suite"

	"github.com/stretchr/testify/require"
)

// declareRoute adds the suite group for one route. The group is attached to parent only once
// it is complete, so a configuration error leaves nothing in the tree.
func (a *API) declareRoute(
	parent *suite.Group,
	server ServerFunc,
	prefix string,
	chain ModifierChain,
	route Route,
) error {
	route = withDefaults(route)
	name := displayName(route, prefix)

	if err := checkLiteralExpectations(route); err != nil {
		return fmt.Errorf("route %q: %w", name, err)
	}
	paths, err := compilePathExpectations(route.ExpectPaths)
	if err != nil {
		return fmt.Errorf("route %q: %w", name, err)
	}

	group := suite.NewGroup(name)
	state := &routeState{}

	group.BeforeAll(func(t *suite.T) error {
		return a.setUpRoute(t, state, server, prefix, chain, route)
	})

	if route.Describe != nil {
		scope := &RouteScope{name: name, group: group, state: state}
		if err := runDescribe(route.Describe, scope); err != nil {
			return err
		}
	}
	if route.Before != nil {
		state.hooks[BeforeRequest] = append([]HookFunc{route.Before}, state.hooks[BeforeRequest]...)
	}
	if route.After != nil {
		state.hooks[AfterRoute] = append([]HookFunc{route.After}, state.hooks[AfterRoute]...)
	}

	group.AfterAll(func(t *suite.T) error {
		if state.executed == nil {
			return nil
		}
		return state.runHooks(AfterRoute, state.executed.Response, state.executed)
	})
	if a.options.CloseServerAfterGroup {
		group.AfterAll(func(t *suite.T) error {
			if state.server != nil {
				state.server.Close()
			}
			return nil
		})
	}

	addDefaultCases(group, state, route, paths)
	parent.AddGroup(group)
	return nil
}

// setUpRoute runs once per route, before any of its test cases: it resolves the route,
// applies the modifiers, runs the before-request hooks, sends the request, and runs the
// before-assertion hooks.
func (a *API) setUpRoute(
	t *suite.T,
	state *routeState,
	server ServerFunc,
	prefix string,
	chain ModifierChain,
	route Route,
) error {
	resolved, err := ResolveRoute(t.Context(), route, prefix)
	if err != nil {
		return err
	}
	if resolved, err = chain.Apply(resolved); err != nil {
		return err
	}
	if err := checkExpectation("expect", resolved.Expect); err != nil {
		return err
	}
	if err := checkExpectation("raw expect", resolved.RawExpect); err != nil {
		return err
	}
	if _, _, err := resolved.Expected(); err != nil {
		return err
	}
	if err := state.runHooks(BeforeRequest, nil, resolved); err != nil {
		return fmt.Errorf("before request hook failed: %w", err)
	}

	s := server()
	if s == nil {
		return errors.New("server function returned nil")
	}
	state.server = s
	res, err := Execute(t.Context(), s, resolved, a.options.Authorization, t.DebugLogger())
	if err != nil {
		return err
	}
	resolved.Response = res
	state.executed = resolved

	if err := state.runHooks(BeforeAssertions, res, resolved); err != nil {
		return fmt.Errorf("before route hook failed: %w", err)
	}
	return nil
}

func checkLiteralExpectations(route Route) error {
	for _, e := range []struct {
		field string
		value Dynamic[interface{}]
	}{{"expect", route.Expect}, {"raw expect", route.RawExpect}} {
		v, ok := e.value.LiteralValue()
		if !ok || v == nil {
			continue
		}
		if err := checkExpectation(e.field, v); err != nil {
			return err
		}
		if _, err := jsonValue(e.field, v); err != nil {
			return err
		}
	}
	return nil
}

// expectationDeclared is false for an absent field and for a literal nil. A deferred value
// counts as declared even if it later produces nil, in which case only the status is checked.
func expectationDeclared(d Dynamic[interface{}]) bool {
	if v, ok := d.LiteralValue(); ok {
		return v != nil
	}
	return d.IsSet()
}

// addDefaultCases adds the status and body checks for a route. A custom Assert function
// replaces them; cases from Describe are added in addition to them.
func addDefaultCases(group *suite.Group, state *routeState, route Route, paths []pathExpectation) {
	if route.Assert != nil {
		group.It(fmt.Sprintf("returns %d and passes custom assertion", route.Status),
			routeCase(state, func(t *suite.T, res *Response, resolved *ResolvedRoute) {
				RequireStatus(t, res, resolved.Status)
				route.Assert(t, res, resolved)
			}))
	} else if expectationDeclared(route.Expect) || expectationDeclared(route.RawExpect) {
		group.It(fmt.Sprintf("returns %d with expected body", route.Status),
			routeCase(state, func(t *suite.T, res *Response, resolved *ResolvedRoute) {
				RequireStatus(t, res, resolved.Status)
				expected, ok, err := resolved.Expected()
				require.NoError(t, err)
				if ok {
					assertExpectedBody(t, res, expected)
				}
			}))
	} else {
		group.It(fmt.Sprintf("returns %d", route.Status),
			routeCase(state, func(t *suite.T, res *Response, resolved *ResolvedRoute) {
				RequireStatus(t, res, resolved.Status)
			}))
	}

	for _, p := range paths {
		p := p
		group.It("body matches "+p.source,
			routeCase(state, func(t *suite.T, res *Response, resolved *ResolvedRoute) {
				p.assertPath(t, res)
			}))
	}
}
