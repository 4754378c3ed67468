// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

//go:build integration

package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/goleak"

	"github.com/deepworktimer/deepworktimer/internal/auth"
	authredis "github.com/deepworktimer/deepworktimer/internal/auth/redis"
)

// testRedisURL points at the Redis testcontainer.
var testRedisURL string

// TestMain sets up a Redis testcontainer for integration tests.
func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		panic("failed to start redis container: " + err.Error())
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		panic("failed to get container host: " + err.Error())
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		_ = container.Terminate(ctx)
		panic("failed to get mapped port: " + err.Error())
	}
	testRedisURL = "redis://" + host + ":" + port.Port() + "/0"

	code := m.Run()

	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newTestStore(t *testing.T) *authredis.SessionStore {
	t.Helper()
	store, err := authredis.NewSessionStore(context.Background(), testRedisURL)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestSessionStore_CreateAndValidate(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("github.com/testcontainers/testcontainers-go.(*Reaper).connect.func1"))

	ctx := context.Background()
	store := newTestStore(t)
	userID := ulid.Make()

	t.Run("round-trips a session", func(t *testing.T) {
		token, err := store.Create(ctx, userID, time.Minute)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		got, ok, err := store.Validate(ctx, token)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, userID, got)
	})

	t.Run("tokens are unique per session", func(t *testing.T) {
		token1, err := store.Create(ctx, userID, time.Minute)
		require.NoError(t, err)
		token2, err := store.Create(ctx, userID, time.Minute)
		require.NoError(t, err)
		assert.NotEqual(t, token1, token2)
	})

	t.Run("unknown token is a miss, not an error", func(t *testing.T) {
		_, ok, err := store.Validate(ctx, "not-a-real-token")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("empty token is a miss", func(t *testing.T) {
		_, ok, err := store.Validate(ctx, "")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestSessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	userID := ulid.Make()

	t.Run("expired session is a miss", func(t *testing.T) {
		token, err := store.Create(ctx, userID, time.Second)
		require.NoError(t, err)

		time.Sleep(1500 * time.Millisecond)

		_, ok, err := store.Validate(ctx, token)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("validation slides expiry forward", func(t *testing.T) {
		client, err := goredis.ParseURL(testRedisURL)
		require.NoError(t, err)
		raw := goredis.NewClient(client)
		defer raw.Close()

		slidingStore := authredis.NewSessionStoreWithClient(raw, time.Hour)
		token, err := slidingStore.Create(ctx, userID, 2*time.Second)
		require.NoError(t, err)

		_, ok, err := slidingStore.Validate(ctx, token)
		require.NoError(t, err)
		require.True(t, ok)

		ttl, err := raw.TTL(ctx, "session:"+token).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, 2*time.Second)
	})
}

func TestSessionStore_Invalidate(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	userID := ulid.Make()

	t.Run("invalidated session no longer validates", func(t *testing.T) {
		token, err := store.Create(ctx, userID, time.Minute)
		require.NoError(t, err)

		require.NoError(t, store.Invalidate(ctx, token))

		_, ok, err := store.Validate(ctx, token)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("invalidating twice is a no-op", func(t *testing.T) {
		token, err := store.Create(ctx, userID, time.Minute)
		require.NoError(t, err)

		require.NoError(t, store.Invalidate(ctx, token))
		require.NoError(t, store.Invalidate(ctx, token))
	})

	t.Run("invalidating an unknown token is a no-op", func(t *testing.T) {
		require.NoError(t, store.Invalidate(ctx, "never-issued"))
	})
}

func TestSessionStore_Unavailable(t *testing.T) {
	ctx := context.Background()
	userID := ulid.Make()

	client, err := goredis.ParseURL("redis://127.0.0.1:1/0")
	require.NoError(t, err)
	raw := goredis.NewClient(client)
	defer raw.Close()

	store := authredis.NewSessionStoreWithClient(raw, time.Hour)

	t.Run("create surfaces ErrStoreUnavailable", func(t *testing.T) {
		_, err := store.Create(ctx, userID, time.Minute)
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrStoreUnavailable)
	})

	t.Run("validate surfaces ErrStoreUnavailable instead of a miss", func(t *testing.T) {
		_, ok, err := store.Validate(ctx, "sometoken")
		require.Error(t, err)
		assert.False(t, ok)
		assert.ErrorIs(t, err, auth.ErrStoreUnavailable)
	})

	t.Run("invalidate surfaces ErrStoreUnavailable", func(t *testing.T) {
		err := store.Invalidate(ctx, "sometoken")
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrStoreUnavailable)
	})
}
