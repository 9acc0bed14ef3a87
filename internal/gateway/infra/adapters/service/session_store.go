package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sportshop/checkout-gateway/internal/gateway/core/domain/entity"
	"github.com/sportshop/checkout-gateway/internal/gateway/core/ports"
	"github.com/sportshop/checkout-gateway/internal/pkg/cache"
)

const sessionSlot = "session"

var _ ports.SessionStore = (*RedisSessionStore)(nil)

// RedisSessionStore reads sessions written by the auth service. The gateway
// only resolves and revokes them; creating sessions (login) is out of scope.
type RedisSessionStore struct {
	cache cache.Cache
}

func NewRedisSessionStore(c cache.Cache) *RedisSessionStore {
	return &RedisSessionStore{cache: c}
}

// Get resolves a session cookie value. An unknown or expired session returns
// (nil, nil); the middleware turns that into a 401.
func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*entity.Session, error) {
	raw, err := s.cache.Get(ctx, s.cache.GenerateKey(sessionSlot, sessionID))
	if err != nil {
		return nil, fmt.Errorf("session store: get %s: %w", sessionID, err)
	}
	if raw == "" {
		return nil, nil
	}

	var sess entity.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("session store: decode %s: %w", sessionID, err)
	}
	return &sess, nil
}

// Delete revokes the session (logout clears state explicitly).
func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.cache.Del(ctx, s.cache.GenerateKey(sessionSlot, sessionID))
}
