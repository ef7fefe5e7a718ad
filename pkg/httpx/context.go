package httpx

import "context"

type ctxKey string

const (
	// CtxKeyUserID carries the authenticated user's id once the session
	// middleware has resolved it.
	CtxKeyUserID ctxKey = "user_id"
)

// ContextWithUserID returns a context carrying the authenticated user id.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxKeyUserID, userID)
}

// UserIDFromContext returns the authenticated user id, or "" if the request
// has not passed the session middleware.
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}
