package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const barbersKey = "barber-booking:barbers"

// BarberCache keeps the barber list in redis. Barbers are read-only to
// this service, so entries only ever expire.
type BarberCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewBarberCache(rdb *redis.Client, ttl time.Duration) *BarberCache {
	return &BarberCache{rdb: rdb, ttl: ttl}
}

// NewClient connects and pings, the way the rest of the process expects a
// collaborator to be verified at startup.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// Get returns (nil, false, nil) on a miss.
func (c *BarberCache) Get(ctx context.Context) ([]models.Barber, bool, error) {
	raw, err := c.rdb.Get(ctx, barbersKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var barbers []models.Barber
	if err := json.Unmarshal(raw, &barbers); err != nil {
		// drop the unreadable entry so the next call repopulates it
		_ = c.rdb.Del(ctx, barbersKey).Err()
		return nil, false, nil
	}
	return barbers, true, nil
}

func (c *BarberCache) Set(ctx context.Context, barbers []models.Barber) error {
	raw, err := json.Marshal(barbers)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, barbersKey, raw, c.ttl).Err()
}
