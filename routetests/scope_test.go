package routetests

import (
	"errors"
	"testing"

	"github.com/routecontract/route-contract-tests/framework/suite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireConfigError(t *testing.T, err error, text string) {
	t.Helper()
	var ce *ConfigError
	require.True(t, errors.As(err, &ce), "expected a *ConfigError, got %v", err)
	assert.Contains(t, ce.Message, text)
}

func TestPrefixesAreConcatenated(t *testing.T) {
	s := &scopeStack{}
	assert.Equal(t, "", s.currentPrefix())

	pop1 := s.push(&declaration{prefix: "/a", hasPrefix: true})
	pop2 := s.push(&declaration{prefix: "/b", hasPrefix: true})
	assert.Equal(t, "/a/b", s.currentPrefix())
	pop2()
	pop1()

	pop1 = s.push(&declaration{prefix: "/a/", hasPrefix: true})
	pop2 = s.push(&declaration{prefix: "/b", hasPrefix: true})
	assert.Equal(t, "/a//b", s.currentPrefix())
	pop2()
	pop1()
	assert.Equal(t, StackDepth{}, s.depth())
}

func TestPushOnlyAddsSuppliedFrames(t *testing.T) {
	s := &scopeStack{}
	server := func() Server { return nil }
	popOuter := s.push(&declaration{server: server, prefix: "/x", hasPrefix: true})
	popInner := s.push(&declaration{modifier: appendToNote("m")})
	assert.Equal(t, StackDepth{Servers: 1, Prefixes: 1, Modifiers: 1}, s.depth())
	popInner()
	assert.Equal(t, StackDepth{Servers: 1, Prefixes: 1}, s.depth())
	popOuter()
	assert.Equal(t, StackDepth{}, s.depth())
}

func TestNestedDeclarationsUseEnclosingContext(t *testing.T) {
	service := newTestService()
	root := suite.NewGroup("")
	api := New(Options{})
	var depthInBlock StackDepth

	err := api.Describe(root,
		WithServer(service.server()),
		WithPrefix("/reflect"),
		WithRoutes(),
		WithBlock(func(s *Scope) error {
			depthInBlock = api.Depth()
			return s.Group("requests", func(s *Scope) error {
				return s.Describe(
					WithRoutes(Route{
						Method: "DELETE",
						Path:   Literal("/request"),
						Expect: Value(map[string]interface{}{"method": "DELETE", "path": "/reflect/request"}),
					}),
				)
			})
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, StackDepth{Servers: 1, Prefixes: 1}, depthInBlock)
	assert.Equal(t, StackDepth{}, api.Depth())

	results := suite.Run(root, nil, nil)
	assert.True(t, results.OK())
	_, ok := results.Find("requests", "DELETE /reflect/request", "returns 200 with expected body")
	assert.True(t, ok)
}

func TestStackIsPoppedWhenBlockFails(t *testing.T) {
	api := New(Options{})
	root := suite.NewGroup("")
	err := api.Describe(root,
		WithServer(newTestService().server()),
		WithPrefix("/p"),
		WithRoutes(),
		WithBlock(func(*Scope) error { return errors.New("broken block") }),
	)
	assert.EqualError(t, err, "broken block")
	assert.Equal(t, StackDepth{}, api.Depth())
}

func TestStackIsPoppedWhenBlockPanics(t *testing.T) {
	api := New(Options{})
	root := suite.NewGroup("")
	func() {
		defer func() { _ = recover() }()
		_ = api.Describe(root,
			WithServer(newTestService().server()),
			WithModifier(appendToNote("x")),
			WithRoutes(),
			WithBlock(func(*Scope) error { panic("boom") }),
		)
	}()
	assert.Equal(t, StackDepth{}, api.Depth())
}

func TestStackIsPoppedWhenRouteDeclarationFails(t *testing.T) {
	api := New(Options{})
	root := suite.NewGroup("")
	err := api.Describe(root,
		WithServer(newTestService().server()),
		WithRoutes(Route{ExpectPaths: map[string]interface{}{"$.data[1": 1}}),
	)
	assert.Error(t, err)
	assert.Equal(t, StackDepth{}, api.Depth())
}

func TestServerIsInheritedUntilReplaced(t *testing.T) {
	outer := newTestService()
	inner := newTestService()
	root := suite.NewGroup("")
	api := New(Options{})

	err := api.Describe(root,
		WithServer(outer.server()),
		WithRoutes(Route{Name: "outer 1"}),
		WithBlock(func(s *Scope) error {
			if err := s.Describe(WithServer(inner.server()), WithRoutes(Route{Name: "inner"})); err != nil {
				return err
			}
			return s.Describe(WithRoutes(Route{Name: "outer 2"}))
		}),
	)
	require.NoError(t, err)

	results := suite.Run(root, nil, nil)
	assert.True(t, results.OK())
	assert.Equal(t, 2, outer.hitCount())
	assert.Equal(t, 1, inner.hitCount())
}

func TestConfigErrors(t *testing.T) {
	root := suite.NewGroup("")

	t.Run("no server", func(t *testing.T) {
		err := New(Options{}).Describe(root, WithRoutes(Route{}))
		requireConfigError(t, err, "the first declaration must have a server")
	})

	t.Run("no routes", func(t *testing.T) {
		err := New(Options{}).Describe(root, WithServer(newTestService().server()))
		requireConfigError(t, err, "must have a list of routes")
	})

	t.Run("nil modifier", func(t *testing.T) {
		api := New(Options{})
		requireConfigError(t, api.AddModifier(nil), "AddModifier")
		err := api.Describe(root, WithServer(newTestService().server()), WithModifier(nil), WithRoutes())
		requireConfigError(t, err, "nil modifier")
	})

	t.Run("nil server", func(t *testing.T) {
		err := New(Options{}).Describe(root, WithServer(nil), WithRoutes())
		requireConfigError(t, err, "nil server")
	})

	assert.Empty(t, root.Groups())
}

func TestDescribeConfig(t *testing.T) {
	service := newTestService()
	root := suite.NewGroup("")
	err := New(Options{}).DescribeConfig(root, Config{
		Server:     service.server(),
		PathPrefix: "/reflect",
		Routes: []Route{{
			Path:   Literal("/request"),
			Expect: Value(map[string]interface{}{"method": "PUT"}),
		}},
		RouteModifier: func(r *ResolvedRoute) (*ResolvedRoute, error) {
			r.Method = "PUT"
			return r, nil
		},
	})
	require.NoError(t, err)

	results := suite.Run(root, nil, nil)
	assert.True(t, results.OK())
	_, ok := results.Find("GET /reflect/request", "returns 200 with expected body")
	assert.True(t, ok)
}
