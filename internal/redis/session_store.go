package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Key pattern: session:revoked:{jti}, TTL = remaining token lifetime.
const revokedKeyPrefix = "session:revoked:"

// RevocationStore records signed-out session token ids in Redis.
type RevocationStore struct {
	client *goredis.Client
}

func NewRevocationStore(client *goredis.Client) *RevocationStore {
	return &RevocationStore{client: client}
}

func revokedKey(tokenID string) string {
	return revokedKeyPrefix + tokenID
}

// Revoke marks tokenID revoked until ttl elapses.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return errors.New("empty token id")
	}
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, revokedKey(tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke session %s: %w", tokenID, err)
	}
	return nil
}

// IsRevoked reports whether tokenID was revoked and has not yet expired.
func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("check session %s: %w", tokenID, err)
	}
	return n > 0, nil
}
