package handlers

import (
	"context"

	"github.com/asecurityteam/lambdakit/pkg/domain"
	"github.com/asecurityteam/lambdakit/pkg/logs"
	"github.com/asecurityteam/lambdakit/pkg/request"
	"github.com/asecurityteam/lambdakit/pkg/response"
)

// Authorizer resolves and checks the caller of a request.
type Authorizer interface {
	// GetUser returns the caller identity. Callers without a credential
	// should resolve to domain.AnonymousUser rather than an error.
	GetUser(ctx context.Context, req *request.Request) (domain.User, error)
	// IsAuthorised returns an error when the user may not perform the
	// request.
	IsAuthorised(ctx context.Context, user domain.User, req *request.Request) error
}

// CORSPolicy derives the CORS headers for a request.
type CORSPolicy interface {
	Headers(req *request.Request) map[string]string
}

// Authorize runs the Authorizer before the wrapped Processor. A GetUser
// failure becomes an Unauthorized error and an IsAuthorised failure becomes
// a Forbidden error. The resolved user is available to the wrapped Processor
// through domain.UserFromContext.
func Authorize(a Authorizer, logFn domain.LogFn) Middleware {
	return func(next Processor) Processor {
		return ProcessorFunc(func(ctx context.Context, req *request.Request, resp *response.Response) error {
			user, err := a.GetUser(ctx, req)
			if err != nil {
				logFn(ctx).Info(logs.AuthorizationFailed{Reason: err.Error()})
				return domain.NewUnauthorized(clientMessage(err, "authentication required"), err)
			}
			ctx = domain.NewUserContext(ctx, user)
			if err := a.IsAuthorised(ctx, user, req); err != nil {
				logFn(ctx).Info(logs.AuthorizationFailed{Reason: err.Error()})
				return domain.NewForbidden(clientMessage(err, "access denied"), err)
			}
			return next.Process(ctx, req, resp)
		})
	}
}

// clientMessage keeps the message of a client facing error and hides the
// text of anything else.
func clientMessage(err error, fallback string) string {
	if e, ok := domain.AsPassthrough(err); ok {
		return e.Message
	}
	return fallback
}

// CORS adds the headers derived by the policy to the response before
// calling the wrapped Processor. The headers are present on both success
// and client error responses.
func CORS(policy CORSPolicy) Middleware {
	return func(next Processor) Processor {
		return ProcessorFunc(func(ctx context.Context, req *request.Request, resp *response.Response) error {
			resp.AddHeaders(policy.Headers(req))
			return next.Process(ctx, req, resp)
		})
	}
}
