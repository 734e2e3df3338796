// Package middleware provides the HTTP middleware used by the API and a small
// chain type for composing it.
package middleware

import (
	"net/http"
)

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// Chain is an immutable, ordered list of middleware. The first entry is the
// outermost wrapper.
type Chain struct {
	middlewares []Middleware
}

// NewChain creates a chain from middlewares.
func NewChain(middlewares ...func(http.Handler) http.Handler) *Chain {
	c := &Chain{middlewares: make([]Middleware, 0, len(middlewares))}
	for _, m := range middlewares {
		c.middlewares = append(c.middlewares, m)
	}
	return c
}

// Then wraps handler with every middleware in the chain.
func (c *Chain) Then(handler http.Handler) http.Handler {
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		handler = c.middlewares[i](handler)
	}
	return handler
}

// ThenFunc is Then for a handler function.
func (c *Chain) ThenFunc(handlerFunc http.HandlerFunc) http.Handler {
	return c.Then(handlerFunc)
}

// Append returns a new chain with middlewares added after the existing ones.
// The receiver is not modified.
func (c *Chain) Append(middlewares ...func(http.Handler) http.Handler) *Chain {
	out := &Chain{middlewares: make([]Middleware, len(c.middlewares), len(c.middlewares)+len(middlewares))}
	copy(out.middlewares, c.middlewares)
	for _, m := range middlewares {
		out.middlewares = append(out.middlewares, m)
	}
	return out
}

// Len reports how many middlewares the chain holds.
func (c *Chain) Len() int {
	return len(c.middlewares)
}
