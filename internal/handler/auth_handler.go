// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"errors"
	"net/http"
	"time"

	"credential-auth/internal/middleware"
	"credential-auth/internal/services"
	"credential-auth/internal/transport/httpdto"
	"credential-auth/internal/validation"
	auth_errors "credential-auth/pkg/errors"

	"github.com/gin-gonic/gin"
)

// CookieConfig controls the session cookie written on sign-in.
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandler handles signup, credential sign-in and session endpoints.
type AuthHandler struct {
	service *services.AuthService
	options services.AuthOptions
	cookie  CookieConfig
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(service *services.AuthService, options services.AuthOptions, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{service: service, options: options, cookie: cookie}
}

// Signup handles account registration.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req httpdto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	res, err := h.service.Signup(c.Request.Context(), validation.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
	})
	if err != nil {
		var verr *auth_errors.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, httpdto.NewValidationErrorResponse("invalid request", verr.Fields))
		case errors.Is(err, auth_errors.ErrAlreadyExists):
			c.JSON(http.StatusConflict, httpdto.NewErrorResponse(services.MsgUserExists, "CONFLICT"))
		default:
			writeAuthError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.SignupResponse{
		Status:  res.Status,
		Message: res.Message,
		Result:  res.Result,
	}))
}

// Credentials verifies email and password and issues a session.
// Every rejection is reported as the same 401.
func (h *AuthHandler) Credentials(c *gin.Context) {
	var req httpdto.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("authorization failed", "UNAUTHORIZED"))
		return
	}

	res, err := h.service.SignIn(c.Request.Context(), validation.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, auth_errors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("authorization failed", "UNAUTHORIZED"))
			return
		}
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("internal error", "INTERNAL_ERROR"))
		return
	}

	h.setSessionCookie(c, res.Token, int(time.Until(res.ExpiresAt).Seconds()))

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.SessionResponse{
		User: httpdto.SessionUserDTO{
			ID:       res.Identity.ID.String(),
			Email:    res.Identity.Email,
			Username: res.Identity.Username,
		},
		Expires: res.ExpiresAt.UTC().Format(time.RFC3339),
		Token:   res.Token,
	}))
}

// Session returns the caller's session, or no data when there is none.
func (h *AuthHandler) Session(c *gin.Context) {
	sess, ok := middleware.SessionFromRequest(c)
	if !ok {
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse[*httpdto.SessionResponse](nil))
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(toSessionResponse(sess)))
}

// SignOut clears the cookie and revokes the current session token.
// The cookie is cleared even when revocation fails.
func (h *AuthHandler) SignOut(c *gin.Context) {
	token := middleware.TokenFromRequest(c, h.cookie.Name)
	h.setSessionCookie(c, "", -1)
	if err := h.service.SignOut(c.Request.Context(), token); err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

// Providers describes the credentials provider and configured pages.
func (h *AuthHandler) Providers(c *gin.Context) {
	p := h.options.Provider
	fields := make(map[string]httpdto.CredentialField, len(p.Credentials))
	for name, f := range p.Credentials {
		fields[name] = httpdto.CredentialField{Label: f.Label, Type: f.Type, Placeholder: f.Placeholder}
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ProvidersResponse{
		Providers: map[string]httpdto.ProviderDTO{
			p.ID: {
				ID:          p.ID,
				Name:        p.Name,
				Type:        "credentials",
				SignInURL:   "/api/auth/signin/" + p.ID,
				CallbackURL: "/api/auth/callback/" + p.ID,
				Credentials: fields,
			},
		},
		Pages: httpdto.PagesDTO{
			SignIn:  h.options.SignInPage,
			NewUser: h.options.NewUserPage,
		},
	}))
}

// Me returns the authenticated identity. Mounted behind RequireSession.
func (h *AuthHandler) Me(c *gin.Context) {
	sess, ok := middleware.SessionFromRequest(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(toSessionResponse(sess).User))
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}

func toSessionResponse(sess services.Session) *httpdto.SessionResponse {
	return &httpdto.SessionResponse{
		User: httpdto.SessionUserDTO{
			ID:       sess.ID.String(),
			Email:    sess.Email,
			Username: sess.Username,
		},
		Expires: sess.ExpiresAt.UTC().Format(time.RFC3339),
	}
}

func writeAuthError(c *gin.Context, err error) {
	status := services.HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "internal error"
	}
	c.JSON(status, httpdto.NewErrorResponse(msg, errorCode(status)))
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "INVALID_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	default:
		return "INTERNAL_ERROR"
	}
}
