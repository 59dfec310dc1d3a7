package cache_test

import (
	"context"
	"testing"
	"time"

	otelMocks "hotel/infras/otel/mocks"
	"hotel/shared/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roomView struct {
	Number string  `json:"number"`
	Price  float64 `json:"price"`
}

func newCache(t *testing.T) (cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedisCache(client, otelMocks.NewOtel()), server
}

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	store, server := newCache(t)

	require.NoError(t, store.Save(ctx, "room:get:101", roomView{Number: "101", Price: 2000}, 60))
	require.NoError(t, store.Save(ctx, "room:label", "Deluxe", 0))

	var room roomView
	require.NoError(t, store.Get(ctx, "room:get:101", &room))
	assert.Equal(t, roomView{Number: "101", Price: 2000}, room)

	var label string
	require.NoError(t, store.Get(ctx, "room:label", &label))
	assert.Equal(t, "Deluxe", label)

	server.FastForward(61 * time.Second)

	err := store.Get(ctx, "room:get:101", &room)
	assert.ErrorIs(t, err, cache.Nil)
}

func TestGet_UndecodableValue(t *testing.T) {
	ctx := context.Background()
	store, server := newCache(t)

	require.NoError(t, server.Set("room:get:102", "{broken"))

	var room roomView
	err := store.Get(ctx, "room:get:102", &room)

	require.Error(t, err)
	assert.NotErrorIs(t, err, cache.Nil)
}

func TestDeleteAndClear(t *testing.T) {
	ctx := context.Background()
	store, server := newCache(t)

	for _, key := range []string{"room:list:a", "room:list:b", "room:count:a", "reservation:get:1"} {
		require.NoError(t, store.Save(ctx, key, "x", 0))
	}

	require.NoError(t, store.Delete(ctx, "reservation:get:1"))
	assert.False(t, server.Exists("reservation:get:1"))

	require.NoError(t, store.Clear(ctx, "room:list*"))

	assert.False(t, server.Exists("room:list:a"))
	assert.False(t, server.Exists("room:list:b"))
	assert.True(t, server.Exists("room:count:a"))
}
