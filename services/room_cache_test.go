package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"residence/constants"
	"residence/models"
)

func newTestRoomCache(t *testing.T) (*RoomCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRoomCache(rdb, time.Minute, nil), mr
}

func TestRoomCache_SetGetInvalidate(t *testing.T) {
	cache, mr := newTestRoomCache(t)
	ctx := context.Background()

	_, found := cache.GetRooms(ctx)
	assert.False(t, found)

	cache.SetRooms(ctx, []models.Room{{RoomId: 1, Number: "101", Status: constants.RoomStatusOccupied}})
	assert.True(t, mr.Exists(roomsCacheKey))

	rooms, found := cache.GetRooms(ctx)
	require.True(t, found)
	require.Len(t, rooms, 1)
	assert.Equal(t, constants.RoomStatusOccupied, rooms[0].Status)

	cache.RoomStatusChanged(ctx, 1, constants.RoomStatusOccupied, constants.RoomStatusAvailable)
	_, found = cache.GetRooms(ctx)
	assert.False(t, found)
}

func TestRoomCache_TTL(t *testing.T) {
	cache, mr := newTestRoomCache(t)
	ctx := context.Background()

	cache.SetRooms(ctx, []models.Room{{RoomId: 1}})
	mr.FastForward(2 * time.Minute)

	_, found := cache.GetRooms(ctx)
	assert.False(t, found)
}

func TestRoomCache_NilIsNoop(t *testing.T) {
	var cache *RoomCache
	ctx := context.Background()

	cache.SetRooms(ctx, []models.Room{{RoomId: 1}})
	_, found := cache.GetRooms(ctx)
	assert.False(t, found)
	assert.NoError(t, cache.Invalidate(ctx))
}
