// README: Waiting pool backed by Redis GEO plus a hash of candidate details.
package matching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"campusride/internal/types"
)

const (
	poolGeoKey  = "matching:pool"
	poolDataKey = "matching:pool:data"

	// MaxPoolLatitude is the largest absolute latitude Redis GEO accepts.
	MaxPoolLatitude = 85.05112878
)

var ErrOutsidePoolRange = errors.New("position outside waiting pool range")

// Indexable reports whether p can be stored in the waiting pool.
func Indexable(p types.Point) bool {
	return p.Valid() && p.Lat >= -MaxPoolLatitude && p.Lat <= MaxPoolLatitude
}

type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

// AddCandidate indexes the candidate position and stores its details.
func (s *Store) AddCandidate(ctx context.Context, c Candidate) error {
	if !Indexable(c.Position) {
		return fmt.Errorf("%w: %s", ErrOutsidePoolRange, c.Position)
	}
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	pipe := s.redis.TxPipeline()
	pipe.GeoAdd(ctx, poolGeoKey, &redis.GeoLocation{
		Name:      string(c.ID),
		Longitude: c.Position.Lng,
		Latitude:  c.Position.Lat,
	})
	pipe.HSet(ctx, poolDataKey, string(c.ID), data)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) RemoveCandidate(ctx context.Context, id types.ID) error {
	pipe := s.redis.TxPipeline()
	pipe.ZRem(ctx, poolGeoKey, string(id))
	pipe.HDel(ctx, poolDataKey, string(id))
	_, err := pipe.Exec(ctx)
	return err
}

// Candidates returns pool members inside the area, nearest to its center first.
func (s *Store) Candidates(ctx context.Context, area Area) ([]Candidate, error) {
	locs, err := s.redis.GeoRadius(ctx, poolGeoKey, area.Center.Lng, area.Center.Lat, &redis.GeoRadiusQuery{
		Radius: area.RadiusM,
		Unit:   "m",
		Sort:   "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}
	if len(locs) == 0 {
		return []Candidate{}, nil
	}

	ids := make([]string, len(locs))
	for i, l := range locs {
		ids[i] = l.Name
	}
	vals, err := s.redis.HMGet(ctx, poolDataKey, ids...).Result()
	if err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(vals))
	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			// GEO member without details; skip until the next resync.
			continue
		}
		var c Candidate
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return nil, fmt.Errorf("decode pool candidate %s: %w", ids[i], err)
		}
		out = append(out, c)
	}
	return out, nil
}

// Size returns the number of indexed pool members.
func (s *Store) Size(ctx context.Context) (int64, error) {
	return s.redis.ZCard(ctx, poolGeoKey).Result()
}
