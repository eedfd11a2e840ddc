package middleware

import (
	"net/http"
	"strings"

	"github.com/davitk/account-console/internal/logger"
	"github.com/davitk/account-console/internal/model"
)

// TokenInspector resolves the user ID behind a bearer access token.
type TokenInspector interface {
	Subject(token string) (string, error)
}

// Authenticate extracts the bearer token, resolves the caller and injects
// it into the request context. The raw token travels with the caller: the
// adapter forwards it to the account service on every call.
type Authenticate struct {
	inspector      TokenInspector
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(inspector TokenInspector, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{inspector: inspector, contextManager: contextManager, logger: logger}
}

// Handle rejects requests without a valid bearer token and stores the
// caller in the context for downstream handlers.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" || tokenString == authHeader {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		userID, err := m.inspector.Subject(tokenString)
		if err != nil {
			m.logger.Info("Authenticate middleware: rejected token",
				"error", err.Error())
			http.Error(w, "invalid bearer token", http.StatusUnauthorized)
			return
		}

		ctx := m.contextManager.WithCaller(r.Context(), model.Caller{
			UserID:      userID,
			AccessToken: tokenString,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
