package middleware

import (
	"context"
	"net/http"
	"strings"

	"credential-auth/internal/services"
	"credential-auth/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// SessionReader resolves a raw token to a session.
type SessionReader interface {
	CurrentSession(ctx context.Context, token string) (services.Session, bool)
}

// SessionMiddleware attaches the caller's session to the request context when
// one is present. It never rejects a request.
func SessionMiddleware(reader SessionReader, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c, cookieName)
		if token != "" {
			if sess, ok := reader.CurrentSession(c.Request.Context(), token); ok {
				c.Request = c.Request.WithContext(services.WithSessionContext(c.Request.Context(), sess))
			}
		}
		c.Next()
	}
}

// RequireSession aborts with 401 unless SessionMiddleware found a session.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := SessionFromRequest(c); !ok {
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// SessionFromRequest is the session accessor for handlers.
func SessionFromRequest(c *gin.Context) (services.Session, bool) {
	return services.SessionFromContext(c.Request.Context())
}

// TokenFromRequest prefers the session cookie and falls back to a bearer header.
func TokenFromRequest(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	return extractBearer(c)
}

func extractBearer(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
