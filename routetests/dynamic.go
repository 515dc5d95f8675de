package routetests

import (
	"context"
	"errors"
)

type dynamicKind int

const (
	absentKind dynamicKind = iota
	literalKind
	deferredKind
	asyncKind
)

// Dynamic is a route field whose value is either given up front or produced when the route is
// about to run. The zero value means that the field was not specified.
//
// Deferred values are produced exactly once per route execution, during the setup of the
// route's suite group. They may have side effects, such as creating a record that the request
// refers to.
type Dynamic[T any] struct {
	kind    dynamicKind
	literal T
	fn      func(context.Context) (T, error)
	async   func() <-chan T
}

// Literal returns a Dynamic with a fixed value.
func Literal[T any](value T) Dynamic[T] {
	return Dynamic[T]{kind: literalKind, literal: value}
}

// Deferred returns a Dynamic whose value is computed by fn when the route runs.
func Deferred[T any](fn func() T) Dynamic[T] {
	if fn == nil {
		return Dynamic[T]{kind: deferredKind}
	}
	return Dynamic[T]{kind: deferredKind, fn: func(context.Context) (T, error) { return fn(), nil }}
}

// DeferredE is like Deferred, but fn can fail or block on ctx. An error fails the setup of the
// route's suite group.
func DeferredE[T any](fn func(ctx context.Context) (T, error)) Dynamic[T] {
	return Dynamic[T]{kind: deferredKind, fn: fn}
}

// Async returns a Dynamic whose value is delivered on a channel returned by fn. Resolution
// waits for the first value; a channel that is closed without a value is an error.
func Async[T any](fn func() <-chan T) Dynamic[T] {
	return Dynamic[T]{kind: asyncKind, async: fn}
}

// Value is shorthand for a literal of type interface{}, which is what request bodies and
// expectations use.
func Value(value interface{}) Dynamic[interface{}] {
	return Literal[interface{}](value)
}

// IsSet returns true if a value or a function was specified.
func (d Dynamic[T]) IsSet() bool {
	return d.kind != absentKind
}

// LiteralValue returns the value and true if d is a literal.
func (d Dynamic[T]) LiteralValue() (T, bool) {
	return d.literal, d.kind == literalKind
}

// Resolve returns the value of d, invoking its function if it has one. An absent field
// resolves to the zero value of T.
func (d Dynamic[T]) Resolve(ctx context.Context) (T, error) {
	var empty T
	switch d.kind {
	case literalKind:
		return d.literal, nil
	case deferredKind:
		if d.fn == nil {
			return empty, errors.New("deferred value has a nil function")
		}
		return d.fn(ctx)
	case asyncKind:
		if d.async == nil {
			return empty, errors.New("async value has a nil function")
		}
		ch := d.async()
		select {
		case v, ok := <-ch:
			if !ok {
				return empty, errors.New("async value channel was closed without a value")
			}
			return v, nil
		case <-ctx.Done():
			return empty, ctx.Err()
		}
	default:
		return empty, nil
	}
}
