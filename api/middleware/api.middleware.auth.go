// FilePath: api/middleware/api.middleware.auth.go
package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/projectwellness/wellness-hub/internal/auth"
	"github.com/projectwellness/wellness-hub/internal/errors"
)

// AuthMiddleware validates bearer tokens and attaches the caller to the
// request context
type AuthMiddleware struct {
	auth *auth.Service
}

func NewAuthMiddleware(authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{auth: authService}
}

// Authenticate validates the token and adds user info to context
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			handleError(w, errors.NewAuthError("no token provided", nil))
			return
		}

		user, err := m.auth.Authenticate(token)
		if err != nil {
			handleError(w, errors.NewAuthError("could not validate user", err))
			return
		}

		ctx := auth.ContextWithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Helper functions

func extractToken(r *http.Request) string {
	bearerToken := r.Header.Get("Authorization")
	parts := strings.Split(bearerToken, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

func handleError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	if apiErr, ok := err.(*errors.APIError); ok {
		w.WriteHeader(apiErr.Code)
		json.NewEncoder(w).Encode(apiErr)
		return
	}
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(errors.NewInternalError("internal server error", err))
}
