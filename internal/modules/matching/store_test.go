package matching

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusride/internal/types"
)

func newTestStore(t *testing.T) (*Store, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(client), client
}

func TestStore_AddAndQuery(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	sim := Simulator{}
	pool, err := sim.Candidates(ctx, Area{})
	require.NoError(t, err)
	for _, c := range pool {
		require.NoError(t, store.AddCandidate(ctx, c))
	}

	size, err := store.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), size)

	// Around Priya's position with a radius that excludes the other two.
	got, err := store.Candidates(ctx, Area{Center: types.Point{Lat: 18.528, Lng: 73.845}, RadiusM: 500})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pool[1], got[0])

	got, err = store.Candidates(ctx, SearchArea(sim.Route(), DefaultCorridorWidthM))
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestStore_NearestFirst(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	center := types.Point{Lat: 18.52, Lng: 73.85}
	require.NoError(t, store.AddCandidate(ctx, candidateAt("far", types.Point{Lat: 18.53, Lng: 73.85})))
	require.NoError(t, store.AddCandidate(ctx, candidateAt("near", types.Point{Lat: 18.521, Lng: 73.85})))

	got, err := store.Candidates(ctx, Area{Center: center, RadiusM: 5000})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, types.ID("near"), got[0].ID)
	assert.Equal(t, types.ID("far"), got[1].ID)
}

func TestStore_Remove(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	c := candidateAt("h100", types.Point{Lat: 18.52, Lng: 73.85})
	require.NoError(t, store.AddCandidate(ctx, c))
	require.NoError(t, store.RemoveCandidate(ctx, c.ID))

	got, err := store.Candidates(ctx, Area{Center: c.Position, RadiusM: 1000})
	require.NoError(t, err)
	assert.Empty(t, got)

	// Removing an unknown candidate is a no-op.
	assert.NoError(t, store.RemoveCandidate(ctx, "missing"))
}

func TestStore_SkipsMembersWithoutDetails(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore(t)

	require.NoError(t, client.GeoAdd(ctx, poolGeoKey, &redis.GeoLocation{
		Name: "orphan", Longitude: 73.85, Latitude: 18.52,
	}).Err())
	require.NoError(t, store.AddCandidate(ctx, candidateAt("h200", types.Point{Lat: 18.5201, Lng: 73.85})))

	got, err := store.Candidates(ctx, Area{Center: types.Point{Lat: 18.52, Lng: 73.85}, RadiusM: 1000})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, types.ID("h200"), got[0].ID)
}

func TestStore_RejectsPositionsOutsideGeoRange(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore(t)

	err := store.AddCandidate(ctx, candidateAt("polar", types.Point{Lat: 86, Lng: 10}))
	assert.ErrorIs(t, err, ErrOutsidePoolRange)

	size, err := store.Size(ctx)
	require.NoError(t, err)
	assert.Zero(t, size)
	n, err := client.HLen(ctx, poolDataKey).Result()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestIndexable(t *testing.T) {
	tests := []struct {
		name string
		p    types.Point
		want bool
	}{
		{"campus", types.Point{Lat: 18.52, Lng: 73.85}, true},
		{"upper edge", types.Point{Lat: MaxPoolLatitude, Lng: 0}, true},
		{"lower edge", types.Point{Lat: -MaxPoolLatitude, Lng: 180}, true},
		{"north of range", types.Point{Lat: 85.06, Lng: 0}, false},
		{"south of range", types.Point{Lat: -90, Lng: 0}, false},
		{"invalid longitude", types.Point{Lat: 0, Lng: 181}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Indexable(tt.p))
		})
	}
}
