package services

import (
	"context"

	"credential-auth/pkg/logger"
)

type ctxKey string

var sessionKey ctxKey = "session"

// WithSessionContext stores sess on ctx and tags the user id for logging.
func WithSessionContext(ctx context.Context, sess Session) context.Context {
	ctx = context.WithValue(ctx, sessionKey, sess)
	return context.WithValue(ctx, logger.UserIdKey, sess.ID.String())
}

func SessionFromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(sessionKey).(Session)
	return sess, ok
}
