package pendingstore

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportshop/checkout-gateway/internal/gateway/core/domain/entity"
)

// memCache implements cache.Cache in memory for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string]string)}
}

func (m *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	default:
		m.data[key] = fmt.Sprint(v)
	}
	return nil
}

func (m *memCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memCache) GetDel(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val := m.data[key]
	delete(m.data, key)
	return val, nil
}

func (m *memCache) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memCache) GenerateKey(operation, key string) string {
	return fmt.Sprintf("test:%s:%s", operation, key)
}

func record() entity.PendingPayment {
	return entity.PendingPayment{
		OrderID:     "42",
		OrderNumber: "ORD202508290001",
		Amount:      160000,
	}
}

func TestSaveAndConsume(t *testing.T) {
	store := New(newMemCache())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "user-1", record()))

	got, err := store.Consume(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, record(), *got)
}

func TestConsume_Idempotent(t *testing.T) {
	store := New(newMemCache())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "user-1", record()))

	first, err := store.Consume(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, first)

	// The second consume finds nothing and is not an error.
	second, err := store.Consume(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, second)
}

func TestConsume_AbsentIsNotAnError(t *testing.T) {
	store := New(newMemCache())

	got, err := store.Consume(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSave_Overwrites(t *testing.T) {
	store := New(newMemCache())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "user-1", record()))

	replacement := entity.PendingPayment{OrderID: "43", OrderNumber: "ORD2", Amount: 99000}
	require.NoError(t, store.Save(ctx, "user-1", replacement))

	got, err := store.Consume(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, replacement, *got, "at most one pending record per user")
}

func TestRecordsAreScopedPerUser(t *testing.T) {
	store := New(newMemCache())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "user-1", record()))

	got, err := store.Consume(ctx, "user-2")
	require.NoError(t, err)
	assert.Nil(t, got)
}
