package routetests

import (
	"context"
	"fmt"
	"strings"
)

// withDefaults fills in the method and status of a declared route.
func withDefaults(route Route) Route {
	if route.Method == "" {
		route.Method = defaultMethod
	}
	route.Method = strings.ToUpper(route.Method)
	if route.Status == 0 {
		route.Status = defaultStatus
	}
	return route
}

// displayName is the name of the route's suite group.
func displayName(route Route, prefix string) string {
	if route.Name != "" {
		return route.Name
	}
	path := "<dynamic>"
	if p, ok := route.Path.LiteralValue(); ok || !route.Path.IsSet() {
		path = prefix + normalizePath(p)
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s %s", route.Method, path, route.Note))
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}

// ResolveRoute produces a ResolvedRoute by invoking every deferred field of route once. Maps
// are copied, so that modifiers can change the result without affecting the declaration.
func ResolveRoute(ctx context.Context, route Route, prefix string) (*ResolvedRoute, error) {
	route = withDefaults(route)
	ret := &ResolvedRoute{
		Method:      route.Method,
		Prefix:      prefix,
		Name:        displayName(route, prefix),
		Note:        route.Note,
		Status:      route.Status,
		ExpectPaths: copyMap(route.ExpectPaths),
		Extra:       copyMap(route.Extra),
	}

	path, err := route.Path.Resolve(ctx)
	if err != nil {
		return nil, fieldError("path", err)
	}
	ret.Path = normalizePath(path)

	if ret.Body, err = route.Body.Resolve(ctx); err != nil {
		return nil, fieldError("body", err)
	}
	if ret.RawBody, err = route.RawBody.Resolve(ctx); err != nil {
		return nil, fieldError("raw body", err)
	}
	headers, err := route.Headers.Resolve(ctx)
	if err != nil {
		return nil, fieldError("headers", err)
	}
	ret.Headers = copyStringMap(headers)
	if ret.Bearer, err = route.Bearer.Resolve(ctx); err != nil {
		return nil, fieldError("bearer", err)
	}
	if ret.Expect, err = route.Expect.Resolve(ctx); err != nil {
		return nil, fieldError("expect", err)
	}
	if ret.RawExpect, err = route.RawExpect.Resolve(ctx); err != nil {
		return nil, fieldError("raw expect", err)
	}
	return ret, nil
}

func fieldError(field string, err error) error {
	return fmt.Errorf("could not resolve %s: %w", field, err)
}
