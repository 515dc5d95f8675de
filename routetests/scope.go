package routetests

import (
	"strings"

	"github.com/routecontract/route-contract-tests/framework/suite"
)

// ServerFunc returns the server for a route when the route runs.
type ServerFunc func() Server

// scopeStack holds the context of the declarations that are in progress. Each frame belongs
// to one declaration call and is removed when that call returns.
type scopeStack struct {
	servers   []ServerFunc
	prefixes  []string
	modifiers []Modifier
}

// StackDepth is the number of frames on each stack of an API.
type StackDepth struct {
	Servers   int
	Prefixes  int
	Modifiers int
}

func (s *scopeStack) depth() StackDepth {
	return StackDepth{Servers: len(s.servers), Prefixes: len(s.prefixes), Modifiers: len(s.modifiers)}
}

func (s *scopeStack) currentServer() ServerFunc {
	if len(s.servers) == 0 {
		return nil
	}
	return s.servers[len(s.servers)-1]
}

// currentPrefix concatenates every active prefix, without adding or removing slashes: "/a"
// and "/b" give "/a/b", while "/a/" and "/b" give "/a//b".
func (s *scopeStack) currentPrefix() string {
	return strings.Join(s.prefixes, "")
}

func (s *scopeStack) currentModifiers() ModifierChain {
	return ModifierChain(nil).With(s.modifiers...)
}

// push adds the frames that a declaration supplies and returns a function that removes
// exactly those frames.
func (s *scopeStack) push(d *declaration) func() {
	if d.server != nil {
		s.servers = append(s.servers, d.server)
	}
	if d.hasPrefix {
		s.prefixes = append(s.prefixes, d.prefix)
	}
	if d.modifier != nil {
		s.modifiers = append(s.modifiers, d.modifier)
	}
	return func() {
		if d.server != nil {
			s.servers = s.servers[:len(s.servers)-1]
		}
		if d.hasPrefix {
			s.prefixes = s.prefixes[:len(s.prefixes)-1]
		}
		if d.modifier != nil {
			s.modifiers = s.modifiers[:len(s.modifiers)-1]
		}
	}
}

// Scope declares routes into one suite group, using the context of the declarations that
// enclose it. A Scope is passed to each declaration's block for nested declarations.
type Scope struct {
	api   *API
	group *suite.Group
}

// SuiteGroup returns the group that routes are declared in.
func (s *Scope) SuiteGroup() *suite.Group {
	return s.group
}

// Describe declares a list of routes, each of which becomes a suite group with its own test
// cases.
//
// The options may be given in any order. WithRoutes is required. The server is taken from
// WithServer or WithServerFunc, or else from the innermost enclosing declaration that has one;
// if there is none, a *ConfigError is returned. WithPrefix is appended to the prefixes of the
// enclosing declarations, and WithModifier to their modifiers. The server, prefix and modifier
// of this call apply to its block and are removed when Describe returns, even if the block
// fails or panics.
func (s *Scope) Describe(opts ...Option) error {
	d := &declaration{}
	for _, o := range opts {
		o(d)
	}
	return s.describe(d)
}

// DescribeConfig is the same as Describe, with the arguments given as a Config.
func (s *Scope) DescribeConfig(config Config) error {
	d := &declaration{
		routes:    config.Routes,
		hasRoutes: config.Routes != nil,
		modifier:  config.RouteModifier,
		block:     config.Block,
	}
	switch {
	case config.Server != nil:
		WithServer(config.Server)(d)
	case config.ServerFunc != nil:
		WithServerFunc(config.ServerFunc)(d)
	}
	if config.PathPrefix != "" {
		WithPrefix(config.PathPrefix)(d)
	}
	return s.describe(d)
}

// Group adds a child suite group and runs block to declare routes in it. Servers, prefixes
// and modifiers of the enclosing declarations still apply.
func (s *Scope) Group(name string, block func(*Scope) error) error {
	child := &Scope{api: s.api, group: s.group.Group(name)}
	return block(child)
}

func (s *Scope) describe(d *declaration) error {
	if d.err != nil {
		return d.err
	}
	stack := s.api.stack
	if d.server == nil && stack.currentServer() == nil {
		return configErrorf("the first declaration must have a server")
	}
	if !d.hasRoutes {
		return configErrorf("a declaration must have a list of routes")
	}

	pop := stack.push(d)
	defer pop()

	server := stack.currentServer()
	prefix := stack.currentPrefix()
	chain := s.api.defaults.With(stack.currentModifiers()...)

	for _, route := range d.routes {
		if err := s.api.declareRoute(s.group, server, prefix, chain, route); err != nil {
			return err
		}
	}

	if d.block != nil {
		return d.block(s)
	}
	return nil
}
