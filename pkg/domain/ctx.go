package domain

import (
	"context"
)

// URLParamFn should be accepted by HTTP handlers that need
// to interface with the mux in use in order to extract request
// parameters from the URL. This defines the contract between
// any given mux and a handler so that the two do not need to
// be coupled.
type URLParamFn func(ctx context.Context, name string) string

type userKey struct{}

// NewUserContext returns a copy of ctx carrying the given user.
func NewUserContext(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFromContext fetches the user stored by an authorization step. The
// anonymous user is returned when no authorization step ran.
func UserFromContext(ctx context.Context) User {
	u, ok := ctx.Value(userKey{}).(User)
	if !ok {
		return AnonymousUser
	}
	return u
}
