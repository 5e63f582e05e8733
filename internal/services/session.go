package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"credential-auth/internal/domain/user"
	auth_errors "credential-auth/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims is the signed token payload. Each token carries its own jti,
// so issuing twice for the same user yields two independent sessions.
type SessionClaims struct {
	UserID   string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Session is what a session read surfaces to callers.
type Session struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires"`
	TokenID   string    `json:"-"`
}

type IssuedSession struct {
	Token     string
	ExpiresAt time.Time
}

// RevocationStore remembers signed-out token ids until they would expire anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// NoopRevocationStore is used when no revocation backend is configured.
// Sign-out then only clears the client cookie.
type NoopRevocationStore struct{}

func (NoopRevocationStore) Revoke(context.Context, string, time.Duration) error { return nil }

func (NoopRevocationStore) IsRevoked(context.Context, string) (bool, error) { return false, nil }

type SessionManager struct {
	secret      []byte
	ttl         time.Duration
	revocations RevocationStore
	now         func() time.Time
}

func NewSessionManager(opts AuthOptions, revocations RevocationStore) *SessionManager {
	if revocations == nil {
		revocations = NoopRevocationStore{}
	}
	return &SessionManager{
		secret:      opts.Secret,
		ttl:         opts.TokenTTL,
		revocations: revocations,
		now:         time.Now,
	}
}

func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token binding identity for the configured TTL.
func (m *SessionManager) Issue(identity user.Identity) (IssuedSession, error) {
	if len(m.secret) == 0 {
		return IssuedSession{}, errors.New("session secret not configured")
	}

	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := SessionClaims{
		UserID:   identity.ID.String(),
		Email:    identity.Email,
		Username: identity.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identity.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return IssuedSession{}, fmt.Errorf("sign session token: %w", err)
	}

	return IssuedSession{Token: signed, ExpiresAt: time.Unix(expiresAt.Unix(), 0)}, nil
}

// Read verifies tokenString and returns the session it carries.
func (m *SessionManager) Read(ctx context.Context, tokenString string) (Session, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return Session{}, err
	}

	revoked, err := m.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return Session{}, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return Session{}, auth_errors.ErrSessionRevoked
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return Session{}, auth_errors.ErrInvalidToken
	}

	return Session{
		ID:        userID,
		Email:     claims.Email,
		Username:  claims.Username,
		ExpiresAt: claims.ExpiresAt.Time,
		TokenID:   claims.ID,
	}, nil
}

// Revoke invalidates tokenString for the rest of its lifetime.
func (m *SessionManager) Revoke(ctx context.Context, tokenString string) error {
	claims, err := m.parse(tokenString)
	if err != nil {
		return err
	}

	ttl := claims.ExpiresAt.Time.Sub(m.now())
	if ttl <= 0 {
		return nil
	}
	return m.revocations.Revoke(ctx, claims.ID, ttl)
}

func (m *SessionManager) parse(tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, auth_errors.ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", auth_errors.ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid || claims.ID == "" {
		return nil, auth_errors.ErrInvalidToken
	}
	return claims, nil
}
