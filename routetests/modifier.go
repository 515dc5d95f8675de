package routetests

import (
	"fmt"
)

// Modifier rewrites a resolved route before its request is sent. Returning a nil route leaves
// the route unchanged. Returning an error fails the setup of the route's suite group.
type Modifier func(route *ResolvedRoute) (*ResolvedRoute, error)

// ModifierChain is an ordered list of modifiers.
type ModifierChain []Modifier

// With returns a new chain with the modifiers appended; c itself is not changed.
func (c ModifierChain) With(modifiers ...Modifier) ModifierChain {
	ret := make(ModifierChain, 0, len(c)+len(modifiers))
	ret = append(ret, c...)
	return append(ret, modifiers...)
}

// Apply threads route through each modifier in order. Each modifier works on its own copy,
// so a modifier that fails part way cannot leave a half-changed route behind.
func (c ModifierChain) Apply(route *ResolvedRoute) (*ResolvedRoute, error) {
	current := route
	for i, m := range c {
		next, err := m(current.clone())
		if err != nil {
			return nil, fmt.Errorf("route modifier %d failed: %w", i+1, err)
		}
		if next != nil {
			current = next
		}
	}
	return current, nil
}

// BearerFromExtra returns a modifier that sets an Authorization header from a string in the
// route's Extra fields, unless the route already has an Authorization header.
func BearerFromExtra(field string) Modifier {
	return func(route *ResolvedRoute) (*ResolvedRoute, error) {
		raw, ok := route.Extra[field]
		if !ok || raw == nil {
			return nil, nil
		}
		token, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("field %q must be a string, not %T", field, raw)
		}
		if _, has := route.Header("Authorization"); has {
			return nil, nil
		}
		if route.Headers == nil {
			route.Headers = make(map[string]string)
		}
		route.Headers["Authorization"] = "Bearer " + token
		return route, nil
	}
}
