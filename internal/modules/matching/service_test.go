package matching

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusride/internal/geo"
	"campusride/internal/types"
)

type fakeRouteSource struct {
	route []types.Point
	err   error
	calls int
}

func (f *fakeRouteSource) Polyline(_ context.Context, _, _ types.Point) ([]types.Point, error) {
	f.calls++
	return f.route, f.err
}

type recordingSupplier struct {
	pool  []Candidate
	areas []Area
}

func (r *recordingSupplier) Candidates(_ context.Context, area Area) ([]Candidate, error) {
	r.areas = append(r.areas, area)
	return r.pool, nil
}

func newTestService(t *testing.T, pool CandidateSupplier, graph RouteSource) *Service {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	svc, err := NewService(DefaultConfig(), pool, graph, func() types.Point { return puneDestination }, log)
	require.NoError(t, err)
	return svc
}

func TestMatchAlongRoute_ExplicitRouteUsesPool(t *testing.T) {
	pool := &recordingSupplier{pool: []Candidate{
		candidateAt("near", types.Point{Lat: 18.5302, Lng: 73.84}),
		candidateAt("far", types.Point{Lat: 18.53, Lng: 73.89}),
	}}
	graph := &fakeRouteSource{}
	svc := newTestService(t, pool, graph)

	res, err := svc.MatchAlongRoute(context.Background(), MatchRequest{Route: puneRoute})
	require.NoError(t, err)

	assert.Zero(t, graph.calls)
	require.Len(t, pool.areas, 1)
	assert.Equal(t, puneDestination, res.RiderDestination)
	require.Len(t, res.AllMatches, 1)
	assert.Equal(t, res.AllMatches, res.Selected)
	assert.Equal(t, DefaultCorridorWidthM, res.Config.CorridorWidthM)
}

func TestMatchAlongRoute_CallerCandidatesOverridePool(t *testing.T) {
	pool := &recordingSupplier{pool: []Candidate{candidateAt("pooled", puneRoute[1])}}
	svc := newTestService(t, pool, &fakeRouteSource{})

	res, err := svc.MatchAlongRoute(context.Background(), MatchRequest{
		Route:      puneRoute,
		Candidates: []Candidate{},
	})
	require.NoError(t, err)
	assert.Empty(t, pool.areas)
	assert.Empty(t, res.AllMatches)
	assert.Empty(t, res.Selected)
}

func TestMatchAlongRoute_CapacityOverride(t *testing.T) {
	sim := Simulator{}
	svc := newTestService(t, sim, &fakeRouteSource{})

	res, err := svc.MatchAlongRoute(context.Background(), MatchRequest{
		Route:            sim.Route(),
		RiderDestination: &demoDestination,
		MaxCapacity:      2,
	})
	require.NoError(t, err)
	assert.Len(t, res.AllMatches, 3)
	require.Len(t, res.Selected, 2)
	assert.Equal(t, res.AllMatches[:2], res.Selected)
}

func TestMatchAlongRoute_ResolvesRouteFromStart(t *testing.T) {
	graph := &fakeRouteSource{route: puneRoute}
	directions := &fakeRouteSource{route: puneRoute[1:]}
	svc := newTestService(t, StaticSupplier{}, graph)
	svc.AddRouteSource("directions", directions)

	start := puneRoute[0]
	res, err := svc.MatchAlongRoute(context.Background(), MatchRequest{Start: &start})
	require.NoError(t, err)
	assert.Equal(t, 1, graph.calls)
	assert.Equal(t, puneRoute, res.Route)

	res, err = svc.MatchAlongRoute(context.Background(), MatchRequest{Start: &start, RouteSource: "directions"})
	require.NoError(t, err)
	assert.Equal(t, 1, directions.calls)
	assert.Len(t, res.Route, 2)
}

func TestMatchAlongRoute_Errors(t *testing.T) {
	routeErr := errors.New("upstream unavailable")
	svc := newTestService(t, StaticSupplier{}, &fakeRouteSource{err: routeErr})
	start := puneRoute[0]

	tests := []struct {
		name string
		req  MatchRequest
		want error
	}{
		{"no route and no start", MatchRequest{}, ErrInvalidRoute},
		{"single point route", MatchRequest{Route: puneRoute[:1]}, ErrInvalidRoute},
		{"unknown route source", MatchRequest{Start: &start, RouteSource: "teleport"}, ErrInvalidRoute},
		{"route source failure", MatchRequest{Start: &start}, routeErr},
		{"corridor too narrow", MatchRequest{Route: puneRoute, CorridorWidthM: 50}, ErrInvalidConfig},
		{"corridor too wide", MatchRequest{Route: puneRoute, CorridorWidthM: 6000}, ErrInvalidConfig},
		{"negative capacity", MatchRequest{Route: puneRoute, MaxCapacity: -1}, ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.MatchAlongRoute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSimulate(t *testing.T) {
	svc := newTestService(t, StaticSupplier{}, &fakeRouteSource{})

	res, err := svc.Simulate(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Selected, 3)

	var ids []types.ID
	for _, m := range res.Selected {
		ids = append(ids, m.Candidate.ID)
	}
	assert.Equal(t, []types.ID{"h001", "h002", "h003"}, ids)
	assert.Equal(t, 1, res.Selected[0].RouteSegmentIndex)
	assert.Equal(t, 2.0, res.Selected[0].EstimatedTimeMinutes)
}

func TestSearchArea_CoversRoute(t *testing.T) {
	area := SearchArea(puneRoute, 1000)
	for _, p := range puneRoute {
		assert.LessOrEqual(t, geo.DistanceMeters(area.Center, p), area.RadiusM-1000+1e-6)
	}
}
