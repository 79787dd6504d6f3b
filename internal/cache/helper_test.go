package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAsideCachesFetchResult(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedThing) func() error {
		return func() error {
			fetches++
			dest.Name = "fetched"
			dest.Count = fetches
			return nil
		}
	}

	var first cachedThing
	require.NoError(t, Aside(ctx, "thing:1", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "fetched", first.Name)

	// Second read is served from Redis without touching the source.
	var second cachedThing
	require.NoError(t, Aside(ctx, "thing:1", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, first, second)
}

func TestAsideFetchErrorNotCached(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	boom := assert.AnError
	var dest cachedThing
	err := Aside(ctx, "thing:2", &dest, time.Minute, func() error { return boom })
	assert.ErrorIs(t, err, boom)

	// The failed fetch left nothing behind; the next call fetches again.
	calls := 0
	require.NoError(t, Aside(ctx, "thing:2", &dest, time.Minute, func() error {
		calls++
		dest.Name = "ok"
		return nil
	}))
	assert.Equal(t, 1, calls)
}

func TestAsideFallsThroughOnRedisError(t *testing.T) {
	mr := setupTestRedis(t)
	ctx := context.Background()

	// A dead Redis must not take reads down with it.
	mr.Close()

	var dest cachedThing
	require.NoError(t, Aside(ctx, "thing:3", &dest, time.Minute, func() error {
		dest.Name = "from source"
		return nil
	}))
	assert.Equal(t, "from source", dest.Name)
}

func TestAsideWithoutClientAlwaysFetches(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	calls := 0
	var dest cachedThing
	for i := 0; i < 2; i++ {
		require.NoError(t, Aside(ctx, "thing:4", &dest, time.Minute, func() error {
			calls++
			return nil
		}))
	}
	assert.Equal(t, 2, calls)
}

func TestInvalidateEvictsKeys(t *testing.T) {
	mr := setupTestRedis(t)
	ctx := context.Background()

	var dest cachedThing
	require.NoError(t, Aside(ctx, UserKey(7), &dest, time.Minute, func() error {
		dest.Name = "cached user"
		return nil
	}))
	require.True(t, mr.Exists(UserKey(7)))

	InvalidateUser(ctx, 7)
	assert.False(t, mr.Exists(UserKey(7)))
}

func TestInvalidateConversationEvictsMessagesToo(t *testing.T) {
	mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, ConversationKey(3), cachedThing{Name: "conv"}, time.Minute))
	require.NoError(t, SetJSON(ctx, MessageHistoryKey(3), cachedThing{Name: "msgs"}, time.Minute))

	InvalidateConversation(ctx, 3)
	assert.False(t, mr.Exists(ConversationKey(3)))
	assert.False(t, mr.Exists(MessageHistoryKey(3)))
}
