package httpapi

import (
	"context"

	"github.com/fedenh3/proyecto-cava/internal/usecase"
)

// sessionKey is private to the package so only RequireAuth can place a
// session in a request context.
type sessionKey struct{}

func withSession(ctx context.Context, s usecase.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func sessionFromContext(ctx context.Context) (usecase.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(usecase.Session)
	return s, ok
}
