package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"running-route-service/internal/domain"
	"running-route-service/internal/platform/obs"
)

const redisKeyPrefix = "place:"

type redisPlace struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RedisPlaceCache stores resolved places as JSON values with a TTL.
type RedisPlaceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPlaceCache(client *redis.Client, ttl time.Duration) *RedisPlaceCache {
	return &RedisPlaceCache{client: client, ttl: ttl}
}

// OpenRedis parses a redis:// URL and verifies the connection.
func OpenRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("open redis: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("open redis: ping: %w", err)
	}
	return client, nil
}

func (c *RedisPlaceCache) Get(ctx context.Context, query string) (_ domain.GeoPoint, _ bool, err error) {
	defer obs.Time(ctx, "place.cache.Get")(&err)

	query = strings.TrimSpace(query)
	if query == "" {
		return domain.GeoPoint{}, false, nil
	}

	raw, err := c.client.Get(ctx, redisKeyPrefix+query).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.GeoPoint{}, false, nil
	}
	if err != nil {
		return domain.GeoPoint{}, false, fmt.Errorf("get place cache: %w", err)
	}

	var v redisPlace
	if err := json.Unmarshal(raw, &v); err != nil {
		return domain.GeoPoint{}, false, fmt.Errorf("get place cache: decode %q: %w", query, err)
	}
	return domain.GeoPoint{Lat: v.Lat, Lng: v.Lng}, true, nil
}

func (c *RedisPlaceCache) Put(ctx context.Context, query string, p domain.GeoPoint) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return errors.New("insert place cache: empty query key")
	}

	raw, err := json.Marshal(redisPlace{Lat: p.Lat, Lng: p.Lng})
	if err != nil {
		return fmt.Errorf("insert place cache: encode: %w", err)
	}

	if err := c.client.Set(ctx, redisKeyPrefix+query, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("insert place cache query=%q: %w", query, err)
	}
	return nil
}
