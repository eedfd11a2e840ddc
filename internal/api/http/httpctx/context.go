// Package httpctx carries the authenticated caller through the request
// context.
package httpctx

import (
	"context"

	"github.com/davitk/account-console/internal/model"
)

type contextKey int

const callerKey contextKey = iota

// Manager implements model.ContextManager for HTTP requests.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// WithCaller returns a context carrying the caller.
func (m *Manager) WithCaller(ctx context.Context, caller model.Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// CallerFromContext returns the caller stored in the context, if any.
func (m *Manager) CallerFromContext(ctx context.Context) (model.Caller, bool) {
	caller, ok := ctx.Value(callerKey).(model.Caller)
	return caller, ok
}
