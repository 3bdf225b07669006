package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"parkspot-backend/internal/config"
	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/logger"
)

const searchGenerationKey = "cache:listings:search:gen"

// RedisCache stores listing pages and search results. Searches are keyed by
// a generation counter so a single INCR invalidates all of them.
type RedisCache struct {
	client     *redis.Client
	listingTTL time.Duration
	searchTTL  time.Duration
}

func NewRedisCache(cfg config.RedisConfig) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		listingTTL: time.Duration(cfg.ListingTTLSecs) * time.Second,
		searchTTL:  time.Duration(cfg.SearchTTLSecs) * time.Second,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) GetListing(ctx context.Context, id string) (*domain.SpotDetail, bool, error) {
	var detail domain.SpotDetail
	ok, err := c.getJSON(ctx, listingKey(id), &detail)
	if !ok || err != nil {
		return nil, false, err
	}
	return &detail, true, nil
}

func (c *RedisCache) SetListing(ctx context.Context, detail *domain.SpotDetail) error {
	return c.setJSON(ctx, listingKey(detail.Spot.ID), detail, c.listingTTL)
}

func (c *RedisCache) InvalidateListing(ctx context.Context, id string) error {
	return c.client.Del(ctx, listingKey(id)).Err()
}

func (c *RedisCache) GetSearch(ctx context.Context, f domain.SpotFilter) ([]domain.ParkingSpot, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, false, err
	}
	var spots []domain.ParkingSpot
	ok, err := c.getJSON(ctx, searchKey(gen, f), &spots)
	if !ok || err != nil {
		return nil, false, err
	}
	return spots, true, nil
}

func (c *RedisCache) SetSearch(ctx context.Context, f domain.SpotFilter, spots []domain.ParkingSpot) error {
	gen, err := c.generation(ctx)
	if err != nil {
		return err
	}
	return c.setJSON(ctx, searchKey(gen, f), spots, c.searchTTL)
}

// InvalidateSearches bumps the generation; stale entries expire on their own.
func (c *RedisCache) InvalidateSearches(ctx context.Context) error {
	return c.client.Incr(ctx, searchGenerationKey).Err()
}

func (c *RedisCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, searchGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisCache) getJSON(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		logger.Warn("Discarding undecodable cache entry", "key", key, "error", err)
		if err := c.client.Del(ctx, key).Err(); err != nil {
			logger.Warn("Failed to drop cache entry", "key", key, "error", err)
		}
		return false, nil
	}
	return true, nil
}

func (c *RedisCache) setJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}

func listingKey(id string) string {
	return "cache:listing:" + id
}

// searchKey normalizes the filter so equivalent searches share an entry.
func searchKey(gen int64, f domain.SpotFilter) string {
	types := make([]string, len(f.Types))
	for i, t := range f.Types {
		types[i] = string(t)
	}
	sort.Strings(types)
	norm := fmt.Sprintf("t=%s|p=%d|c=%s|l=%d", strings.Join(types, ","), f.MaxPriceCents,
		strings.ToLower(strings.TrimSpace(f.City)), f.Limit)
	sum := sha1.Sum([]byte(norm))
	return fmt.Sprintf("cache:listings:search:%d:%s", gen, hex.EncodeToString(sum[:]))
}
