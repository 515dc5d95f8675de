// Package routefile loads route declarations from YAML files, so that routes can be tested
// without writing Go code.
//
// A file looks like this:
//
//	pathPrefix: /api
//	routes:
//	  - path: /
//	  - method: POST
//	    path: /reflect/body
//	    body: {title: Speaking of Earth}
//	    expect: {title: Speaking of Earth}
//	groups:
//	  - name: errors
//	    routes:
//	      - path: /error
//	        status: 400
package routefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/routecontract/route-contract-tests/routetests"

	"gopkg.in/yaml.v3"
)

// Group is a list of routes with an optional path prefix and nested groups. The top level of a
// file is a Group whose name is ignored.
type Group struct {
	Name       string  `yaml:"name"`
	PathPrefix string  `yaml:"pathPrefix"`
	Routes     []Route `yaml:"routes"`
	Groups     []Group `yaml:"groups"`
}

// Route is the YAML form of routetests.Route. Every value is a literal.
type Route struct {
	Method      string                 `yaml:"method"`
	Path        string                 `yaml:"path"`
	Name        string                 `yaml:"name"`
	Note        string                 `yaml:"note"`
	Status      int                    `yaml:"status"`
	Body        interface{}            `yaml:"body"`
	RawBody     interface{}            `yaml:"rawBody"`
	Headers     map[string]string      `yaml:"headers"`
	Bearer      string                 `yaml:"bearer"`
	Expect      interface{}            `yaml:"expect"`
	RawExpect   interface{}            `yaml:"rawExpect"`
	ExpectPaths map[string]interface{} `yaml:"expectPaths"`
}

// Parse reads a route file. Unknown fields are an error, so that a misspelled field does not
// silently turn into a route without an expectation.
func Parse(data []byte) (*Group, error) {
	var g Group
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&g); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("route file is empty")
		}
		return nil, fmt.Errorf("invalid route file: %w", err)
	}
	return &g, nil
}

// Load reads a route file from disk.
func Load(path string) (*Group, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Declare declares the group's routes and nested groups. Options such as the server are
// passed through to the top-level declaration.
func (g *Group) Declare(scope *routetests.Scope, opts ...routetests.Option) error {
	allOpts := append([]routetests.Option(nil), opts...)
	if g.PathPrefix != "" {
		allOpts = append(allOpts, routetests.WithPrefix(g.PathPrefix))
	}
	allOpts = append(allOpts,
		routetests.WithRoutes(g.routes()...),
		routetests.WithBlock(func(s *routetests.Scope) error {
			for i := range g.Groups {
				child := &g.Groups[i]
				name := child.Name
				if name == "" {
					name = fmt.Sprintf("group %d", i+1)
				}
				if err := s.Group(name, func(s *routetests.Scope) error {
					return child.Declare(s)
				}); err != nil {
					return err
				}
			}
			return nil
		}),
	)
	return scope.Describe(allOpts...)
}

func (g *Group) routes() []routetests.Route {
	ret := make([]routetests.Route, 0, len(g.Routes))
	for _, r := range g.Routes {
		ret = append(ret, r.toRoute())
	}
	return ret
}

func (r Route) toRoute() routetests.Route {
	ret := routetests.Route{
		Method:      r.Method,
		Name:        r.Name,
		Note:        r.Note,
		Status:      r.Status,
		ExpectPaths: r.ExpectPaths,
	}
	if r.Path != "" {
		ret.Path = routetests.Literal(r.Path)
	}
	if r.Body != nil {
		ret.Body = routetests.Value(r.Body)
	}
	if r.RawBody != nil {
		ret.RawBody = routetests.Value(r.RawBody)
	}
	if r.Headers != nil {
		ret.Headers = routetests.Literal(r.Headers)
	}
	if r.Bearer != "" {
		ret.Bearer = routetests.Literal(r.Bearer)
	}
	if r.Expect != nil {
		ret.Expect = routetests.Value(r.Expect)
	}
	if r.RawExpect != nil {
		ret.RawExpect = routetests.Value(r.RawExpect)
	}
	return ret
}
