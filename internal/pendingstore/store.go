// Package pendingstore persists the pending-payment record that bridges the
// full-page redirect to the payment gateway and the return to the app.
//
// The record must live in storage that outlives the browser's navigation
// away from the storefront, so it is kept in Redis keyed per user under the
// well-known "pending_order" slot. Saving overwrites any prior record, which
// keeps the invariant of at most one pending record per user. Consuming is a
// single GETDEL, so a second consume (page refresh on the return URL) sees
// nothing and the reconciler skips every mutation.
package pendingstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sportshop/checkout-gateway/internal/gateway/core/domain/entity"
	"github.com/sportshop/checkout-gateway/internal/gateway/core/ports"
	"github.com/sportshop/checkout-gateway/internal/pkg/cache"
)

const slot = "pending_order"

// DefaultTTL bounds the record's lifetime to a single checkout attempt.
// A user parked on the gateway's payment page for longer than this has to
// start over.
const DefaultTTL = time.Hour

var _ ports.PendingStore = (*Store)(nil)

// Store is the Redis-backed implementation of ports.PendingStore.
type Store struct {
	cache cache.Cache
	ttl   time.Duration
}

func New(c cache.Cache) *Store {
	return &Store{cache: c, ttl: DefaultTTL}
}

// NewWithTTL exists for tests that need a short expiry.
func NewWithTTL(c cache.Cache, ttl time.Duration) *Store {
	return &Store{cache: c, ttl: ttl}
}

// Save persists the record, overwriting any prior value for the user.
// The write completes before Save returns; callers rely on this ordering to
// guarantee the record is durable before the redirect URL is handed out.
func (s *Store) Save(ctx context.Context, userID string, p entity.PendingPayment) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("pendingstore: marshal record for user %s: %w", userID, err)
	}
	if err := s.cache.Set(ctx, s.cache.GenerateKey(slot, userID), data, s.ttl); err != nil {
		return fmt.Errorf("pendingstore: save record for user %s: %w", userID, err)
	}
	return nil
}

// Consume reads and deletes the record in one atomic Redis command.
// An absent record is not an error: it returns (nil, nil) so the caller can
// render an outcome without mutating anything.
func (s *Store) Consume(ctx context.Context, userID string) (*entity.PendingPayment, error) {
	raw, err := s.cache.GetDel(ctx, s.cache.GenerateKey(slot, userID))
	if err != nil {
		return nil, fmt.Errorf("pendingstore: consume record for user %s: %w", userID, err)
	}
	if raw == "" {
		return nil, nil
	}

	var p entity.PendingPayment
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("pendingstore: decode record for user %s: %w", userID, err)
	}
	return &p, nil
}
