package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"credential-auth/internal/domain/user"
	auth_errors "credential-auth/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
	err     error
}

func newMemoryRevocations() *memoryRevocations {
	return &memoryRevocations{revoked: map[string]time.Duration{}}
}

func (m *memoryRevocations) Revoke(_ context.Context, id string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[id] = ttl
	return nil
}

func (m *memoryRevocations) IsRevoked(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.revoked[id]
	return ok, nil
}

func testOptions() AuthOptions {
	return AuthOptions{
		SessionStrategy: SessionStrategyJWT,
		TokenTTL:        15 * 24 * time.Hour,
		SignInPage:      "/",
		NewUserPage:     "/sign-up",
		Secret:          []byte("test-secret"),
		Provider:        DefaultCredentialsProvider(),
	}
}

func testIdentity() user.Identity {
	return user.Identity{ID: uuid.New(), Email: "jsmith@gmail.com", Username: "jsmith"}
}

func TestSessionIssueAndRead(t *testing.T) {
	m := NewSessionManager(testOptions(), nil)
	id := testIdentity()

	before := time.Now()
	issued, err := m.Issue(id)
	require.NoError(t, err)
	require.NotEmpty(t, issued.Token)
	assert.WithinDuration(t, before.Add(15*24*time.Hour), issued.ExpiresAt, 2*time.Second)

	sess, err := m.Read(context.Background(), issued.Token)
	require.NoError(t, err)
	assert.Equal(t, id.ID, sess.ID)
	assert.Equal(t, id.Email, sess.Email)
	assert.Equal(t, id.Username, sess.Username)
	assert.True(t, issued.ExpiresAt.Equal(sess.ExpiresAt))
}

func TestSessionIssueTwiceIsIndependent(t *testing.T) {
	revocations := newMemoryRevocations()
	m := NewSessionManager(testOptions(), revocations)
	id := testIdentity()

	first, err := m.Issue(id)
	require.NoError(t, err)
	second, err := m.Issue(id)
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)

	require.NoError(t, m.Revoke(context.Background(), first.Token))

	_, err = m.Read(context.Background(), first.Token)
	assert.ErrorIs(t, err, auth_errors.ErrSessionRevoked)

	sess, err := m.Read(context.Background(), second.Token)
	require.NoError(t, err)
	assert.Equal(t, id.ID, sess.ID)
}

func TestSessionRevokeUsesRemainingLifetime(t *testing.T) {
	revocations := newMemoryRevocations()
	m := NewSessionManager(testOptions(), revocations)

	issued, err := m.Issue(testIdentity())
	require.NoError(t, err)
	sess, err := m.Read(context.Background(), issued.Token)
	require.NoError(t, err)

	require.NoError(t, m.Revoke(context.Background(), issued.Token))
	ttl := revocations.revoked[sess.TokenID]
	assert.InDelta(t, (15 * 24 * time.Hour).Seconds(), ttl.Seconds(), 5)
}

func TestSessionReadRejects(t *testing.T) {
	m := NewSessionManager(testOptions(), nil)

	t.Run("empty token", func(t *testing.T) {
		_, err := m.Read(context.Background(), "")
		assert.ErrorIs(t, err, auth_errors.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Read(context.Background(), "not.a.token")
		assert.ErrorIs(t, err, auth_errors.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := testOptions()
		other.Secret = []byte("other-secret")
		issued, err := NewSessionManager(other, nil).Issue(testIdentity())
		require.NoError(t, err)

		_, err = m.Read(context.Background(), issued.Token)
		assert.ErrorIs(t, err, auth_errors.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := NewSessionManager(testOptions(), nil)
		past.now = func() time.Time { return time.Now().Add(-16 * 24 * time.Hour) }
		issued, err := past.Issue(testIdentity())
		require.NoError(t, err)

		_, err = m.Read(context.Background(), issued.Token)
		assert.ErrorIs(t, err, auth_errors.ErrInvalidToken)
	})

	t.Run("unexpected algorithm", func(t *testing.T) {
		claims := SessionClaims{
			UserID: uuid.NewString(),
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        "jti",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = m.Read(context.Background(), token)
		assert.ErrorIs(t, err, auth_errors.ErrInvalidToken)
	})
}

func TestSessionReadRevocationBackendError(t *testing.T) {
	revocations := newMemoryRevocations()
	revocations.err = errors.New("redis down")
	m := NewSessionManager(testOptions(), revocations)

	issued, err := m.Issue(testIdentity())
	require.NoError(t, err)

	_, err = m.Read(context.Background(), issued.Token)
	assert.ErrorIs(t, err, revocations.err)
}

func TestSessionIssueWithoutSecret(t *testing.T) {
	opts := testOptions()
	opts.Secret = nil
	_, err := NewSessionManager(opts, nil).Issue(testIdentity())
	assert.Error(t, err)
}
