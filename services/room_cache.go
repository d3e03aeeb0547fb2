package services

import (
	"context"
	"time"

	"residence/constants"
	"residence/models"
	"residence/services/logger"

	"github.com/redis/go-redis/v9"
)

const roomsCacheKey = "rooms:all"

// RoomCache keeps the room list in redis. A nil *RoomCache, or one without a
// client, behaves as an always-empty cache.
type RoomCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewRoomCache(rdb *redis.Client, ttl time.Duration, log logger.Logger) *RoomCache {
	if log == nil {
		log = logger.Nop()
	}
	return &RoomCache{rdb: rdb, ttl: ttl, logger: log}
}

func (c *RoomCache) enabled() bool {
	return c != nil && c.rdb != nil
}

func (c *RoomCache) GetRooms(ctx context.Context) ([]models.Room, bool) {
	if !c.enabled() {
		return nil, false
	}
	var rooms []models.Room
	found, err := GetFromRedis(ctx, c.rdb, roomsCacheKey, &rooms)
	if err != nil {
		c.logger.Warn("room cache read failed: %v", err)
		return nil, false
	}
	return rooms, found
}

func (c *RoomCache) SetRooms(ctx context.Context, rooms []models.Room) {
	if !c.enabled() {
		return
	}
	if err := SetToRedis(ctx, c.rdb, roomsCacheKey, rooms, c.ttl); err != nil {
		c.logger.Warn("room cache write failed: %v", err)
	}
}

// Invalidate drops the cached room list.
func (c *RoomCache) Invalidate(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	return DeleteFromRedis(ctx, c.rdb, roomsCacheKey)
}

// RoomStatusChanged drops the cached list so the new status is served.
func (c *RoomCache) RoomStatusChanged(ctx context.Context, roomID uint, _, _ constants.RoomStatus) {
	if err := c.Invalidate(ctx); err != nil {
		c.logger.Warn("room cache invalidate for room %d failed: %v", roomID, err)
	}
}
