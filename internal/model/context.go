package model

import "context"

// Caller is the authenticated principal behind a dashboard request: the
// user ID extracted from the bearer token and the raw token itself, which
// the adapter forwards to the account service on every call. The token is
// never cached outside the request scope.
type Caller struct {
	UserID      string
	AccessToken string
}

// ContextManager stores and retrieves the caller in a request context.
type ContextManager interface {
	WithCaller(ctx context.Context, caller Caller) context.Context
	CallerFromContext(ctx context.Context) (Caller, bool)
}
