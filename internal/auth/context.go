// FilePath: internal/auth/context.go
package auth

import "context"

type contextKey string

const userContextKey contextKey = "user"

// ContextWithUser attaches the authenticated caller to the context
func ContextWithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext retrieves the authenticated caller, if any
func UserFromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}
