// README: Corridor matcher projects candidates onto a route and ranks pickups greedily.
package matching

import (
	"fmt"
	"math"
	"sort"

	"campusride/internal/geo"
	"campusride/internal/types"
)

// Matcher holds only its configuration and is safe for concurrent use.
type Matcher struct {
	cfg Config
}

func NewMatcher(cfg Config) (*Matcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Matcher{cfg: cfg}, nil
}

func (m *Matcher) Config() Config {
	return m.cfg
}

// FindMatches returns every candidate travelling to riderDestination that lies
// within the corridor around route, ranked by segment index then distance.
// PickupOrder is the 1-based rank.
func (m *Matcher) FindMatches(route []types.Point, candidates []Candidate, riderDestination types.Point) ([]CorridorMatch, error) {
	if len(route) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, got %d", ErrInvalidRoute, len(route))
	}

	matches := make([]CorridorMatch, 0, len(candidates))
	for _, c := range candidates {
		if geo.DistanceMeters(c.Destination, riderDestination) > m.cfg.DestinationToleranceM {
			continue
		}

		best := math.Inf(1)
		var pickup types.Point
		segment := 0
		for i := 0; i+1 < len(route); i++ {
			d, closest := geo.ProjectOntoSegment(c.Position, route[i], route[i+1])
			if d < best {
				best = d
				pickup = closest
				segment = i
			}
		}
		if best > m.cfg.CorridorWidthM {
			continue
		}

		matches = append(matches, CorridorMatch{
			Candidate:            c,
			DistanceFromRouteM:   best,
			PickupPoint:          pickup,
			RouteSegmentIndex:    segment,
			EstimatedTimeMinutes: float64(segment) * m.cfg.MinutesPerSegment,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].RouteSegmentIndex != matches[j].RouteSegmentIndex {
			return matches[i].RouteSegmentIndex < matches[j].RouteSegmentIndex
		}
		return matches[i].DistanceFromRouteM < matches[j].DistanceFromRouteM
	})
	for i := range matches {
		matches[i].PickupOrder = i + 1
	}
	return matches, nil
}

// SelectOptimal keeps the first maxCapacity matches of an already ranked list.
func SelectOptimal(matches []CorridorMatch, maxCapacity int) []CorridorMatch {
	if maxCapacity <= 0 {
		return []CorridorMatch{}
	}
	if len(matches) < maxCapacity {
		maxCapacity = len(matches)
	}
	out := make([]CorridorMatch, maxCapacity)
	copy(out, matches[:maxCapacity])
	return out
}
