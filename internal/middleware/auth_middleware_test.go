package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"credential-auth/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReader struct {
	token string
	sess  services.Session
	seen  []string
}

func (s *stubReader) CurrentSession(_ context.Context, token string) (services.Session, bool) {
	s.seen = append(s.seen, token)
	if token == s.token {
		return s.sess, true
	}
	return services.Session{}, false
}

func TestTokenFromRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		setup  func(r *http.Request)
		expect string
	}{
		{name: "none", setup: func(r *http.Request) {}, expect: ""},
		{name: "bearer", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer abc") }, expect: "abc"},
		{name: "lowercase scheme", setup: func(r *http.Request) { r.Header.Set("Authorization", "bearer abc") }, expect: "abc"},
		{name: "basic ignored", setup: func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") }, expect: ""},
		{name: "cookie wins", setup: func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer header")
			r.AddCookie(&http.Cookie{Name: "session-token", Value: "cookie"})
		}, expect: "cookie"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			tc.setup(c.Request)
			assert.Equal(t, tc.expect, TokenFromRequest(c, "session-token"))
		})
	}
}

func TestSessionMiddlewareAndRequireSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reader := &stubReader{token: "good", sess: services.Session{ID: uuid.New(), Email: "a@b.co"}}

	r := gin.New()
	r.Use(SessionMiddleware(reader, "session-token"))
	r.GET("/open", func(c *gin.Context) {
		_, ok := SessionFromRequest(c)
		c.JSON(http.StatusOK, gin.H{"has_session": ok})
	})
	r.GET("/closed", RequireSession(), func(c *gin.Context) {
		sess, _ := SessionFromRequest(c)
		c.String(http.StatusOK, sess.ID.String())
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/open", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"has_session":false}`, rec.Body.String())
	assert.Empty(t, reader.seen)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/closed", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/closed", nil)
	req.Header.Set("Authorization", "Bearer bad")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/closed", nil)
	req.AddCookie(&http.Cookie{Name: "session-token", Value: "good"})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, reader.sess.ID.String(), rec.Body.String())
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, rec.Header().Get(RequestIDHeader), 32)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "given")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "given", rec.Header().Get(RequestIDHeader))
}
