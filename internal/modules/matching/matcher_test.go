package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusride/internal/types"
)

var (
	puneRoute = []types.Point{
		{Lat: 18.56, Lng: 73.8567},
		{Lat: 18.55, Lng: 73.85},
		{Lat: 18.51, Lng: 73.83},
	}
	puneDestination = types.Point{Lat: 18.51, Lng: 73.83}
)

func candidateAt(id string, pos types.Point) Candidate {
	return Candidate{ID: types.ID(id), Name: id, Position: pos, Destination: puneDestination}
}

func newTestMatcher(t *testing.T) *Matcher {
	t.Helper()
	m, err := NewMatcher(DefaultConfig())
	require.NoError(t, err)
	return m
}

func TestFindMatches_PuneScenario(t *testing.T) {
	m := newTestMatcher(t)
	near := candidateAt("near", types.Point{Lat: 18.5302, Lng: 73.84})
	far := candidateAt("far", types.Point{Lat: 18.53, Lng: 73.89})

	matches, err := m.FindMatches(puneRoute, []Candidate{far, near}, puneDestination)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	got := matches[0]
	assert.Equal(t, types.ID("near"), got.Candidate.ID)
	assert.Equal(t, 1, got.PickupOrder)
	assert.Equal(t, 1, got.RouteSegmentIndex)
	assert.Less(t, got.DistanceFromRouteM, 50.0)
	assert.Equal(t, 2.0, got.EstimatedTimeMinutes)
}

func TestFindMatches_OnRouteCandidateAlwaysKept(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CorridorWidthM = MinCorridorWidthM
	m, err := NewMatcher(cfg)
	require.NoError(t, err)

	for _, p := range puneRoute {
		matches, err := m.FindMatches(puneRoute, []Candidate{candidateAt("on-route", p)}, puneDestination)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.InDelta(t, 0, matches[0].DistanceFromRouteM, 1e-6)
	}
}

func TestFindMatches_SharedVertexGoesToEarlierSegment(t *testing.T) {
	m := newTestMatcher(t)
	matches, err := m.FindMatches(puneRoute, []Candidate{candidateAt("vertex", puneRoute[1])}, puneDestination)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 0, matches[0].RouteSegmentIndex)
	assert.Equal(t, 0.0, matches[0].EstimatedTimeMinutes)
	assert.Equal(t, puneRoute[1], matches[0].PickupPoint)
}

func TestFindMatches_DestinationFilter(t *testing.T) {
	m := newTestMatcher(t)

	elsewhere := candidateAt("elsewhere", puneRoute[1])
	elsewhere.Destination = types.Point{Lat: 18.60, Lng: 73.90}
	nearby := candidateAt("nearby", puneRoute[1])
	// Roughly 1.1 km north of the rider destination.
	nearby.Destination = types.Point{Lat: 18.52, Lng: 73.83}

	matches, err := m.FindMatches(puneRoute, []Candidate{elsewhere, nearby}, puneDestination)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, types.ID("nearby"), matches[0].Candidate.ID)
}

func TestFindMatches_Ranking(t *testing.T) {
	m := newTestMatcher(t)
	candidates := []Candidate{
		candidateAt("seg1-far", types.Point{Lat: 18.5305, Lng: 73.84}),
		candidateAt("seg0", types.Point{Lat: 18.555, Lng: 73.8553}),
		candidateAt("seg1-close", types.Point{Lat: 18.5301, Lng: 73.84}),
	}

	matches, err := m.FindMatches(puneRoute, candidates, puneDestination)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	var ids []types.ID
	for i, match := range matches {
		ids = append(ids, match.Candidate.ID)
		assert.Equal(t, i+1, match.PickupOrder)
		assert.Equal(t, float64(match.RouteSegmentIndex)*2, match.EstimatedTimeMinutes)
	}
	assert.Equal(t, []types.ID{"seg0", "seg1-close", "seg1-far"}, ids)
	assert.Less(t, matches[1].DistanceFromRouteM, matches[2].DistanceFromRouteM)
}

func TestFindMatches_InvalidRoute(t *testing.T) {
	m := newTestMatcher(t)
	for _, route := range [][]types.Point{nil, {puneDestination}} {
		_, err := m.FindMatches(route, nil, puneDestination)
		assert.ErrorIs(t, err, ErrInvalidRoute)
	}
}

func TestFindMatches_EmptyCandidates(t *testing.T) {
	m := newTestMatcher(t)
	matches, err := m.FindMatches(puneRoute, nil, puneDestination)
	require.NoError(t, err)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestSelectOptimal(t *testing.T) {
	m := newTestMatcher(t)
	sim := Simulator{}
	candidates, err := sim.Candidates(context.Background(), Area{})
	require.NoError(t, err)
	all, err := m.FindMatches(sim.Route(), candidates, sim.Destination())
	require.NoError(t, err)
	require.Len(t, all, 3)

	tests := []struct {
		name     string
		capacity int
		want     int
	}{
		{"zero capacity", 0, 0},
		{"negative capacity", -1, 0},
		{"truncates", 2, 2},
		{"exact", 3, 3},
		{"more seats than matches", 10, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectOptimal(all, tt.capacity)
			require.Len(t, got, tt.want)
			assert.Equal(t, all[:tt.want], got)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"minimum width", func(c *Config) { c.CorridorWidthM = 100 }, true},
		{"maximum width", func(c *Config) { c.CorridorWidthM = 5000 }, true},
		{"width too small", func(c *Config) { c.CorridorWidthM = 99 }, false},
		{"width too large", func(c *Config) { c.CorridorWidthM = 5001 }, false},
		{"no capacity", func(c *Config) { c.MaxCapacity = 0 }, false},
		{"no tolerance", func(c *Config) { c.DestinationToleranceM = 0 }, false},
		{"negative minutes", func(c *Config) { c.MinutesPerSegment = -1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}
