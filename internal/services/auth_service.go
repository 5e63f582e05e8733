package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"credential-auth/internal/domain/user"
	"credential-auth/internal/repository"
	"credential-auth/internal/validation"
	auth_errors "credential-auth/pkg/errors"
	"credential-auth/pkg/logger"

	"go.uber.org/zap"
)

const (
	MsgAccountCreated = "Account created successfully"
	MsgUserExists     = "User already exists."
)

type AuthService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	sessions *SessionManager
	logger   *logger.Logger
}

func NewAuthService(userRepo repository.UserRepository, hasher PasswordHasher, sessions *SessionManager, l *logger.Logger) *AuthService {
	if l == nil {
		l = logger.NewNop()
	}
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		sessions: sessions,
		logger:   l,
	}
}

type SignupResult struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

// Signup registers a new user. Validation runs before any store access; a
// duplicate email fails with ErrAlreadyExists whether it is caught by the
// existence check or by the unique index on insert.
func (s *AuthService) Signup(ctx context.Context, in validation.SignupInput) (SignupResult, error) {
	checked := validation.ValidateSignup(in)
	if err := checked.Err(); err != nil {
		return SignupResult{}, err
	}
	in = checked.Value

	if _, err := s.userRepo.GetUserByEmail(ctx, in.Email); err == nil {
		return SignupResult{}, auth_errors.ErrAlreadyExists
	} else if !errors.Is(err, auth_errors.ErrNotFound) {
		return SignupResult{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return SignupResult{}, fmt.Errorf("hash password: %w", err)
	}

	newUser := &user.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
	}
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, auth_errors.ErrAlreadyExists) {
			return SignupResult{}, err
		}
		return SignupResult{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info(ctx, "user registered", zap.String("user_id", newUser.ID.String()))

	return SignupResult{
		Status:  http.StatusCreated,
		Message: MsgAccountCreated,
		Result:  newUser.Email,
	}, nil
}

type FailureReason string

const (
	ReasonInvalidInput      FailureReason = "invalid_credentials_input"
	ReasonNoUserFound       FailureReason = "no_user_found"
	ReasonIncorrectPassword FailureReason = "incorrect_password"
	ReasonInternal          FailureReason = "internal_error"
)

// AuthResult is either an Identity (success) or a Reason (failure). Err holds
// the underlying cause for logging and is never shown to the caller.
type AuthResult struct {
	Identity *user.Identity
	Reason   FailureReason
	Err      error
}

func (r AuthResult) OK() bool {
	return r.Identity != nil
}

func reject(reason FailureReason, err error) AuthResult {
	return AuthResult{Reason: reason, Err: err}
}

// Authorize checks credentials and returns the minimal identity on success.
func (s *AuthService) Authorize(ctx context.Context, in validation.LoginInput) AuthResult {
	checked := validation.ValidateLogin(in)
	if err := checked.Err(); err != nil {
		return reject(ReasonInvalidInput, err)
	}
	in = checked.Value

	u, err := s.userRepo.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, auth_errors.ErrNotFound) {
			return reject(ReasonNoUserFound, err)
		}
		return reject(ReasonInternal, err)
	}

	ok, err := s.hasher.Verify(in.Password, u.Password)
	if err != nil {
		return reject(ReasonInternal, err)
	}
	if !ok {
		return reject(ReasonIncorrectPassword, auth_errors.ErrUnauthorized)
	}

	identity := u.Identity()
	return AuthResult{Identity: &identity}
}

type SignInResult struct {
	Identity  user.Identity
	Token     string
	ExpiresAt time.Time
}

// SignIn authorizes and issues a session. Every rejection collapses into
// ErrUnauthorized; internal failures are returned wrapped so they map to 500.
func (s *AuthService) SignIn(ctx context.Context, in validation.LoginInput) (SignInResult, error) {
	res := s.Authorize(ctx, in)
	if !res.OK() {
		if res.Reason == ReasonInternal {
			s.logger.Error(ctx, "authorization failed", zap.String("reason", string(res.Reason)), zap.Error(res.Err))
			return SignInResult{}, fmt.Errorf("authorize: %w", res.Err)
		}
		s.logger.Warn(ctx, "authorization rejected",
			zap.String("reason", string(res.Reason)),
			zap.String("email", in.Email),
		)
		return SignInResult{}, auth_errors.ErrUnauthorized
	}

	issued, err := s.sessions.Issue(*res.Identity)
	if err != nil {
		return SignInResult{}, err
	}

	s.logger.Info(ctx, "session issued", zap.String("user_id", res.Identity.ID.String()))

	return SignInResult{
		Identity:  *res.Identity,
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
	}, nil
}

// CurrentSession resolves a token to its session. Absent, invalid, expired
// and revoked tokens all report ok=false.
func (s *AuthService) CurrentSession(ctx context.Context, token string) (Session, bool) {
	if token == "" {
		return Session{}, false
	}
	sess, err := s.sessions.Read(ctx, token)
	if err != nil {
		s.logger.Debug(ctx, "session read rejected", zap.Error(err))
		return Session{}, false
	}
	s.logger.Debug(ctx, "session read", zap.String("user_id", sess.ID.String()), zap.Time("expires", sess.ExpiresAt))
	return sess, true
}

// SignOut revokes token. Tokens that no longer verify are ignored.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, token); err != nil {
		if errors.Is(err, auth_errors.ErrInvalidToken) {
			return nil
		}
		return err
	}
	return nil
}

func (s *AuthService) SessionTTL() time.Duration {
	return s.sessions.TTL()
}

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, auth_errors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, auth_errors.ErrUnauthorized),
		errors.Is(err, auth_errors.ErrInvalidToken),
		errors.Is(err, auth_errors.ErrSessionRevoked):
		return http.StatusUnauthorized
	case errors.Is(err, auth_errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth_errors.ErrAlreadyExists), errors.Is(err, auth_errors.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
