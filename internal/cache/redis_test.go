package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkspot-backend/internal/config"
	"parkspot-backend/internal/domain"
)

func TestSearchKey(t *testing.T) {
	a := domain.SpotFilter{
		Types: []domain.SpotType{domain.SpotTypeLot, domain.SpotTypeGarage},
		City:  "Austin ",
		Limit: 24,
	}
	b := domain.SpotFilter{
		Types: []domain.SpotType{domain.SpotTypeGarage, domain.SpotTypeLot},
		City:  "austin",
		Limit: 24,
	}

	t.Run("Equivalent filters share a key", func(t *testing.T) {
		assert.Equal(t, searchKey(3, a), searchKey(3, b))
	})

	t.Run("Generation changes the key", func(t *testing.T) {
		assert.NotEqual(t, searchKey(3, a), searchKey(4, a))
	})

	t.Run("Price is part of the key", func(t *testing.T) {
		c := b
		c.MaxPriceCents = 3000
		assert.NotEqual(t, searchKey(3, b), searchKey(3, c))
	})
}

func TestListingKey(t *testing.T) {
	assert.Equal(t, "cache:listing:spot-1", listingKey("spot-1"))
}

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewRedisCache(config.RedisConfig{Addr: mr.Addr(), ListingTTLSecs: 300, SearchTTLSecs: 60})
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestRedisCache_Listing(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	t.Run("Miss", func(t *testing.T) {
		detail, ok, err := c.GetListing(ctx, "spot-1")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, detail)
	})

	t.Run("Round trip", func(t *testing.T) {
		in := &domain.SpotDetail{
			Spot:          domain.ParkingSpot{ID: "spot-1", Title: "Garage", City: "Austin", PricePerDayCents: 2500},
			AverageRating: 4.5,
			ReviewCount:   2,
		}
		require.NoError(t, c.SetListing(ctx, in))
		assert.Equal(t, 300*time.Second, mr.TTL("cache:listing:spot-1"))

		got, ok, err := c.GetListing(ctx, "spot-1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Garage", got.Spot.Title)
		assert.Equal(t, int64(2500), got.Spot.PricePerDayCents)
		assert.Equal(t, int32(2), got.ReviewCount)
	})

	t.Run("Invalidate", func(t *testing.T) {
		require.NoError(t, c.InvalidateListing(ctx, "spot-1"))
		_, ok, err := c.GetListing(ctx, "spot-1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Expired entry misses", func(t *testing.T) {
		require.NoError(t, c.SetListing(ctx, &domain.SpotDetail{Spot: domain.ParkingSpot{ID: "spot-2"}}))
		mr.FastForward(301 * time.Second)
		_, ok, err := c.GetListing(ctx, "spot-2")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Undecodable entry is dropped", func(t *testing.T) {
		require.NoError(t, mr.Set("cache:listing:spot-3", "{not json"))
		_, ok, err := c.GetListing(ctx, "spot-3")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, mr.Exists("cache:listing:spot-3"))
	})
}

func TestRedisCache_Search(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)
	filter := domain.SpotFilter{Types: []domain.SpotType{domain.SpotTypeGarage}, City: "Austin", Limit: 24}
	spots := []domain.ParkingSpot{{ID: "spot-1", Title: "Garage"}, {ID: "spot-2", Title: "Lot"}}

	_, ok, err := c.GetSearch(ctx, filter)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.SetSearch(ctx, filter, spots))
	assert.Equal(t, 60*time.Second, mr.TTL(searchKey(0, filter)))

	got, ok, err := c.GetSearch(ctx, domain.SpotFilter{Types: []domain.SpotType{domain.SpotTypeGarage}, City: "austin ", Limit: 24})
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, "spot-1", got[0].ID)
	assert.Equal(t, "Lot", got[1].Title)

	require.NoError(t, c.InvalidateSearches(ctx))
	gen, err := mr.Get(searchGenerationKey)
	require.NoError(t, err)
	assert.Equal(t, "1", gen)

	_, ok, err = c.GetSearch(ctx, filter)
	require.NoError(t, err)
	assert.False(t, ok, "bumped generation hides older results")

	require.NoError(t, c.SetSearch(ctx, filter, spots[:1]))
	got, ok, err = c.GetSearch(ctx, filter)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, got, 1)
	assert.True(t, mr.Exists(searchKey(1, filter)))
}

func TestRedisCache_ServerDown(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)
	mr.Close()

	_, ok, err := c.GetListing(ctx, "spot-1")
	assert.Error(t, err)
	assert.False(t, ok)

	_, ok, err = c.GetSearch(ctx, domain.SpotFilter{})
	assert.Error(t, err)
	assert.False(t, ok)

	assert.Error(t, c.InvalidateSearches(ctx))
	assert.Error(t, c.Ping(ctx))
}
