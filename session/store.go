// Package session tracks revoked JWTs in Redis so logout actually invalidates
// tokens instead of relying on client-side forgetting.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	rdb *redis.Client
}

// New connects to Redis and verifies the connection with a ping.
func New(addr string) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: 0})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &Store{rdb: rdb}, nil
}

// Revoke blacklists a token until it would have expired anyway.
func (s *Store) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to revoke
	}
	return s.rdb.Set(ctx, revokedKey(token), "1", ttl).Err()
}

// IsRevoked reports whether a token has been blacklisted.
func (s *Store) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func revokedKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "revoked:" + hex.EncodeToString(sum[:])
}
