package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	rdb := testRedis(t)

	type payload struct {
		Name string `json:"name"`
		BPM  int    `json:"bpm"`
	}

	key := RecordsCacheKey(1, 2)
	require.NoError(t, SetCache(ctx, rdb, key, payload{Name: "dana", BPM: 72}, time.Minute))

	var got payload
	hit, err := GetCache(ctx, rdb, key, &got)
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, payload{Name: "dana", BPM: 72}, got)
}

func TestCacheMiss(t *testing.T) {
	ctx := context.Background()
	rdb := testRedis(t)

	var got map[string]any
	hit, err := GetCache(ctx, rdb, "absent", &got)
	require.NoError(t, err)
	require.False(t, hit)
}

func TestDeleteCacheInvalidates(t *testing.T) {
	ctx := context.Background()
	rdb := testRedis(t)

	key := MemberCacheKey(1, 2)
	require.NoError(t, SetCache(ctx, rdb, key, "cached", time.Minute))
	require.NoError(t, DeleteCache(ctx, rdb, key))

	var got string
	hit, err := GetCache(ctx, rdb, key, &got)
	require.NoError(t, err)
	require.False(t, hit)
}

func TestCacheKeysAreScoped(t *testing.T) {
	// Keys must differ per user and per member so invalidation never
	// crosses scopes.
	require.NotEqual(t, MemberCacheKey(1, 2), MemberCacheKey(2, 1))
	require.NotEqual(t, RecordsCacheKey(1, 2), RecordsCacheKey(1, 3))
	require.NotEqual(t, MemberCacheKey(1, 2), RecordsCacheKey(1, 2))
}
