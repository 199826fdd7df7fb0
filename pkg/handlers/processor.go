package handlers

import (
	"context"

	"github.com/asecurityteam/lambdakit/pkg/request"
	"github.com/asecurityteam/lambdakit/pkg/response"
)

// Processor implements the behavior of a single handler. Implementations
// either complete the Response themselves or return an error. Returned
// errors are passed to Response.Fail exactly once by the Lifecycle.
type Processor interface {
	Process(ctx context.Context, req *request.Request, resp *response.Response) error
}

// ProcessorFunc adapts a function to the Processor interface.
type ProcessorFunc func(ctx context.Context, req *request.Request, resp *response.Response) error

// Process calls f.
func (f ProcessorFunc) Process(ctx context.Context, req *request.Request, resp *response.Response) error {
	return f(ctx, req, resp)
}

// Middleware decorates a Processor.
type Middleware func(Processor) Processor

// Chain wraps p in each middleware. The first middleware is the outermost.
func Chain(p Processor, mws ...Middleware) Processor {
	for x := len(mws) - 1; x >= 0; x = x - 1 {
		p = mws[x](p)
	}
	return p
}
