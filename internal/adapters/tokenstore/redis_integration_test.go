//go:build integration

package tokenstore

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"eventsapi/internal/domain"
)

func startRedis(t *testing.T) domain.TokenStore {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	addr, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	store, closeFn, err := NewRedisStore(ctx, RedisConfig{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })
	return store
}

func TestRedisStore(t *testing.T) {
	store := startRedis(t)
	ctx := context.Background()

	t.Run("save, exists and revoke", func(t *testing.T) {
		ok, err := store.Exists(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, store.Save(ctx, "jti-1", "acc-1", time.Hour))
		ok, err = store.Exists(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, ok)

		revoked, err := store.Revoke(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)

		ok, err = store.Exists(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, ok)

		revoked, err = store.Revoke(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, revoked, "second revoke")
	})

	t.Run("ttl expiry", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "short", "acc-1", 500*time.Millisecond))
		require.Eventually(t, func() bool {
			ok, err := store.Exists(ctx, "short")
			return err == nil && !ok
		}, 5*time.Second, 100*time.Millisecond)

		revoked, err := store.Revoke(ctx, "short")
		require.NoError(t, err)
		assert.False(t, revoked, "expired token cannot be consumed")
	})

	t.Run("concurrent revoke wins once", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "shared", "acc-1", time.Hour))

		var (
			wg   sync.WaitGroup
			wins atomic.Int32
		)
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if ok, err := store.Revoke(ctx, "shared"); err == nil && ok {
					wins.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), wins.Load())
	})
}

func TestNewRedisStore_unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, _, err := NewRedisStore(ctx, RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
