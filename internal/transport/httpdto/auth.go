package httpdto

import auth_errors "credential-auth/pkg/errors"

// SignupRequest is used for POST /api/auth/signup
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// SignupResponse mirrors the signup result body.
type SignupResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

// CredentialsRequest is used for POST /api/auth/callback/credentials
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionUserDTO is the identity bound to a session. It never carries a password.
type SessionUserDTO struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// SessionResponse is returned by sign-in and session reads.
type SessionResponse struct {
	User    SessionUserDTO `json:"user"`
	Expires string         `json:"expires"`
	Token   string         `json:"token,omitempty"`
}

// ProviderDTO describes the credentials provider for sign-in forms.
type ProviderDTO struct {
	ID          string                     `json:"id"`
	Name        string                     `json:"name"`
	Type        string                     `json:"type"`
	SignInURL   string                     `json:"signinUrl"`
	CallbackURL string                     `json:"callbackUrl"`
	Credentials map[string]CredentialField `json:"credentials"`
}

type CredentialField struct {
	Label       string `json:"label"`
	Type        string `json:"type"`
	Placeholder string `json:"placeholder,omitempty"`
}

// ProvidersResponse is returned by GET /api/auth/providers
type ProvidersResponse struct {
	Providers map[string]ProviderDTO `json:"providers"`
	Pages     PagesDTO               `json:"pages"`
}

type PagesDTO struct {
	SignIn  string `json:"signIn"`
	NewUser string `json:"newUser"`
}

// ValidationErrorResponse lists the failed fields of a rejected request.
type ValidationErrorResponse struct {
	Success bool                     `json:"success"`
	Error   string                   `json:"error"`
	Code    string                   `json:"code"`
	Fields  []auth_errors.FieldError `json:"fields"`
}
