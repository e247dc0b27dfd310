// README: Matching service resolves the route and candidate pool, then runs the corridor matcher.
package matching

import (
	"context"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"

	"campusride/internal/geo"
	"campusride/internal/types"
)

const RouteSourceGraph = "graph"

// RouteSource turns an origin into a route polyline.
type RouteSource interface {
	Polyline(ctx context.Context, origin, destination types.Point) ([]types.Point, error)
}

type MatchRequest struct {
	// Route is used as-is when set; otherwise it is resolved from Start.
	Route            []types.Point
	Start            *types.Point
	RouteSource      string
	RiderDestination *types.Point
	CorridorWidthM   float64
	MaxCapacity      int
	// Candidates overrides the waiting pool when non-nil.
	Candidates []Candidate
}

type MatchResult struct {
	Route            []types.Point
	RiderDestination types.Point
	Config           Config
	AllMatches       []CorridorMatch
	Selected         []CorridorMatch
}

type Service struct {
	cfg         Config
	pool        CandidateSupplier
	sources     map[string]RouteSource
	destination func() types.Point
	log         logrus.FieldLogger
}

// NewService wires the default config, the waiting pool, the graph route
// source and the fixed-destination lookup.
func NewService(cfg Config, pool CandidateSupplier, graph RouteSource, destination func() types.Point, log logrus.FieldLogger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		cfg:         cfg,
		pool:        pool,
		sources:     map[string]RouteSource{RouteSourceGraph: graph},
		destination: destination,
		log:         log,
	}, nil
}

// AddRouteSource registers an extra named route source such as "directions".
func (s *Service) AddRouteSource(name string, src RouteSource) {
	s.sources[name] = src
}

func (s *Service) Config() Config {
	return s.cfg
}

func (s *Service) MatchAlongRoute(ctx context.Context, req MatchRequest) (MatchResult, error) {
	cfg := s.cfg.WithOverrides(req.CorridorWidthM, req.MaxCapacity)
	matcher, err := NewMatcher(cfg)
	if err != nil {
		return MatchResult{}, err
	}

	dest := s.destination()
	if req.RiderDestination != nil {
		dest = *req.RiderDestination
	}

	route := req.Route
	if len(route) == 0 {
		if req.Start == nil {
			return MatchResult{}, fmt.Errorf("%w: route or start location required", ErrInvalidRoute)
		}
		name := req.RouteSource
		if name == "" {
			name = RouteSourceGraph
		}
		src, ok := s.sources[name]
		if !ok {
			return MatchResult{}, fmt.Errorf("%w: unknown route source %q", ErrInvalidRoute, name)
		}
		route, err = src.Polyline(ctx, *req.Start, dest)
		if err != nil {
			return MatchResult{}, fmt.Errorf("resolve route from %s: %w", name, err)
		}
	}
	if len(route) < 2 {
		return MatchResult{}, fmt.Errorf("%w: need at least 2 points, got %d", ErrInvalidRoute, len(route))
	}

	candidates := req.Candidates
	if candidates == nil {
		candidates, err = s.pool.Candidates(ctx, SearchArea(route, cfg.CorridorWidthM))
		if err != nil {
			return MatchResult{}, fmt.Errorf("load waiting pool: %w", err)
		}
	}

	return s.run(matcher, route, candidates, dest)
}

// Simulate runs the matcher over the demo fixture with the default config.
func (s *Service) Simulate(ctx context.Context) (MatchResult, error) {
	sim := Simulator{}
	matcher, err := NewMatcher(DefaultConfig())
	if err != nil {
		return MatchResult{}, err
	}
	route := sim.Route()
	candidates, err := sim.Candidates(ctx, SearchArea(route, DefaultCorridorWidthM))
	if err != nil {
		return MatchResult{}, err
	}
	return s.run(matcher, route, candidates, sim.Destination())
}

func (s *Service) run(m *Matcher, route []types.Point, candidates []Candidate, dest types.Point) (MatchResult, error) {
	all, err := m.FindMatches(route, candidates, dest)
	if err != nil {
		return MatchResult{}, err
	}
	cfg := m.Config()
	selected := SelectOptimal(all, cfg.MaxCapacity)

	s.log.WithFields(logrus.Fields{
		"route_points":     len(route),
		"candidates":       len(candidates),
		"matches":          len(all),
		"selected":         len(selected),
		"corridor_width_m": cfg.CorridorWidthM,
	}).Info("corridor matching completed")

	return MatchResult{
		Route:            route,
		RiderDestination: dest,
		Config:           cfg,
		AllMatches:       all,
		Selected:         selected,
	}, nil
}

// SearchArea is the circle around the route bounding box, widened by the corridor.
func SearchArea(route []types.Point, corridorWidthM float64) Area {
	ls := make(orb.LineString, len(route))
	for i, p := range route {
		ls[i] = orb.Point{p.Lng, p.Lat}
	}
	b := ls.Bound()
	c := b.Center()
	center := types.Point{Lat: c.Lat(), Lng: c.Lon()}

	radius := 0.0
	for _, corner := range []orb.Point{b.Min, b.Max, b.LeftTop(), b.RightBottom()} {
		d := geo.DistanceMeters(center, types.Point{Lat: corner.Lat(), Lng: corner.Lon()})
		radius = math.Max(radius, d)
	}
	return Area{Center: center, RadiusM: radius + corridorWidthM}
}
