package account

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Pjt727/roster/server/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifetime(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	now := start
	store := NewMemoryStore(30*time.Minute, 15*time.Minute)
	store.now = func() time.Time { return now }

	token, err := store.Create(ctx, view.User{UserName: "ada"})
	require.NoError(t, err)

	user, ok, err := store.Get(ctx, token)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ada", user.UserName)

	now = start.Add(31 * time.Minute)
	_, ok, err = store.Get(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok, "session should have expired")
}

func TestMemoryStoreExtendsActiveSessions(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	now := start
	store := NewMemoryStore(30*time.Minute, 15*time.Minute)
	store.now = func() time.Time { return now }

	token, err := store.Create(ctx, view.User{UserName: "ada"})
	require.NoError(t, err)

	// 10 minutes left, so the session gains another 15
	now = start.Add(20 * time.Minute)
	_, ok, _ := store.Get(ctx, token)
	require.True(t, ok)

	now = start.Add(40 * time.Minute)
	_, ok, _ = store.Get(ctx, token)
	assert.True(t, ok)
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour, time.Minute)
	token, err := store.Create(ctx, view.User{UserName: "ada"})
	require.NoError(t, err)
	other, err := store.Create(ctx, view.User{UserName: "bob"})
	require.NoError(t, err)
	assert.NotEqual(t, token, other)

	require.NoError(t, store.Delete(ctx, token))
	_, ok, _ := store.Get(ctx, token)
	assert.False(t, ok)
	user, ok, _ := store.Get(ctx, other)
	assert.True(t, ok)
	assert.Equal(t, "bob", user.UserName)
}

func TestRedisStore(t *testing.T) {
	address := os.Getenv("REDIS_ADDRESS")
	if address == "" {
		t.Skip("REDIS_ADDRESS not set")
	}
	ctx := context.Background()
	store, err := NewRedisStore(ctx, address, os.Getenv("REDIS_PASSWORD"), time.Minute, 30*time.Second)
	require.NoError(t, err)
	defer store.Close()

	token, err := store.Create(ctx, view.User{
		UserName:     "ada",
		LoginHistory: []view.LoginEntry{{UserAgent: "curl/8.0"}},
	})
	require.NoError(t, err)

	user, ok, err := store.Get(ctx, token)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ada", user.UserName)
	require.Len(t, user.LoginHistory, 1)
	assert.Equal(t, "curl/8.0", user.LoginHistory[0].UserAgent)

	require.NoError(t, store.Delete(ctx, token))
	_, ok, err = store.Get(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)
}
