package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/fuelstation-backend/pkg/config"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string)}
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *mockStore) AccessSessionKey(accessID string) string {
	return fmt.Sprintf("sess:%s", accessID)
}

func newTestManager(store *mockStore) *Manager {
	return &Manager{store: store, keyer: store, ttl: time.Hour}
}

func TestManagerGenerateAndRotate(t *testing.T) {
	store := newMockStore()
	manager := newTestManager(store)

	ctx := context.Background()
	token, err := manager.Generate(ctx, "access-123", "operator-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	has, err := manager.HasSession(ctx, "access-123")
	require.NoError(t, err)
	assert.True(t, has)

	_, err = manager.Rotate(ctx, "access-123", "wrong")
	assert.True(t, errors.Is(err, ErrInvalidRefreshToken))

	rotation, err := manager.Rotate(ctx, "access-123", token)
	require.NoError(t, err)
	assert.Equal(t, "operator-1", rotation.OperatorID)
	assert.NotEqual(t, token, rotation.RefreshToken)

	_, exists := store.data[store.AccessSessionKey("access-123")]
	assert.False(t, exists, "old access key left behind")

	has, err = manager.HasSession(ctx, rotation.AccessID)
	require.NoError(t, err)
	assert.True(t, has)

	_, err = manager.Rotate(ctx, "access-123", token)
	assert.True(t, errors.Is(err, ErrInvalidRefreshToken), "replaying a rotated token must fail")
}

func TestManagerRevoke(t *testing.T) {
	store := newMockStore()
	manager := newTestManager(store)
	ctx := context.Background()

	_, err := manager.Generate(ctx, "access-1", "operator-1")
	require.NoError(t, err)
	require.NoError(t, manager.Revoke(ctx, "access-1"))

	has, err := manager.HasSession(ctx, "access-1")
	require.NoError(t, err)
	assert.False(t, has)

	assert.Error(t, manager.Revoke(ctx, " "))
}

func TestManagerRejectsCorruptRecord(t *testing.T) {
	store := newMockStore()
	manager := newTestManager(store)
	store.data[store.AccessSessionKey("access-1")] = "not-json"

	_, err := manager.Rotate(context.Background(), "access-1", "anything")
	assert.True(t, errors.Is(err, ErrInvalidRefreshToken))
}

func TestManagerGenerateValidatesInput(t *testing.T) {
	manager := newTestManager(newMockStore())
	_, err := manager.Generate(context.Background(), "", "op")
	assert.Error(t, err)
	_, err = manager.Generate(context.Background(), "access", "")
	assert.Error(t, err)
}

func TestNewManagerValidatesTTL(t *testing.T) {
	_, err := NewManager(nil, config.JWTConfig{})
	assert.Error(t, err)
}
