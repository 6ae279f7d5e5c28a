package shopify

import "context"

// Session is the authenticated shop session supplied by the platform's
// auth middleware. Outbound Admin API calls authenticate with it.
type Session struct {
	Shop        string
	AccessToken string
}

type sessionCtxKey struct{}

// NewContext returns a copy of ctx carrying sess.
func NewContext(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, sess)
}

// SessionFromContext returns the session stored in ctx, if any.
func SessionFromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(sessionCtxKey{}).(Session)
	if !ok || sess.AccessToken == "" {
		return Session{}, false
	}
	return sess, true
}
