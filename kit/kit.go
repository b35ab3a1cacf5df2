// Package kit provides transport-agnostic endpoint plumbing shared by the
// MCP and HTTP surfaces: decoding lives in the transport adapter, business
// logic behind the Endpoint.
package kit

import "context"

// Endpoint is the transport-agnostic unit of work.
type Endpoint func(ctx context.Context, req any) (any, error)

// Middleware wraps an Endpoint with cross-cutting behaviour.
type Middleware func(Endpoint) Endpoint

// Chain composes middlewares so the first listed runs outermost.
func Chain(mw ...Middleware) Middleware {
	return func(next Endpoint) Endpoint {
		for i := len(mw) - 1; i >= 0; i-- {
			next = mw[i](next)
		}
		return next
	}
}
