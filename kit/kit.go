// Package kit holds the transport-agnostic plumbing shared by the tool
// server: the endpoint abstraction, middleware chaining, request-scoped
// context values and the MCP registration adapter.
package kit

import "context"

// Endpoint is a single request/response operation. Transports decode into
// the request, call the endpoint, and encode the response.
type Endpoint func(ctx context.Context, req any) (any, error)

// Middleware wraps an Endpoint with cross-cutting behavior.
type Middleware func(Endpoint) Endpoint

// Chain composes middlewares so the first argument is outermost.
func Chain(mws ...Middleware) Middleware {
	return func(next Endpoint) Endpoint {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}
