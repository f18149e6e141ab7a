// README: Pending-package index backed by Redis GEO.
package matching

import (
	"context"

	"github.com/redis/go-redis/v9"

	"packpal/internal/types"
)

const pendingGeoKey = "matching:pending_packages"

// Store keeps the pickup point of every pending package in one Redis GEO
// set so travelers can browse by radius without a table scan. Postgres
// stays the source of truth; entries here are hints that get re-checked.
type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

func (s *Store) IndexPending(ctx context.Context, id types.ID, pickup types.Point) error {
	return s.redis.GeoAdd(ctx, pendingGeoKey, &redis.GeoLocation{
		Name:      string(id),
		Longitude: pickup.Lng,
		Latitude:  pickup.Lat,
	}).Err()
}

func (s *Store) RemovePending(ctx context.Context, id types.ID) error {
	return s.redis.ZRem(ctx, pendingGeoKey, string(id)).Err()
}

// NearbyPending returns pending-package ids within radiusKm of the origin,
// closest first.
func (s *Store) NearbyPending(ctx context.Context, origin types.Point, radiusKm float64) ([]types.ID, error) {
	results, err := s.redis.GeoSearch(ctx, pendingGeoKey, &redis.GeoSearchQuery{
		Longitude:  origin.Lng,
		Latitude:   origin.Lat,
		Radius:     radiusKm,
		RadiusUnit: "km",
		Sort:       "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]types.ID, len(results))
	for i, r := range results {
		ids[i] = types.ID(r)
	}
	return ids, nil
}
