// README: Candidate suppliers feeding the corridor matcher.
package matching

import (
	"context"

	"campusride/internal/types"
)

// Area is a circular search region around a route.
type Area struct {
	Center  types.Point
	RadiusM float64
}

// CandidateSupplier provides the waiting pool a matching run draws from.
type CandidateSupplier interface {
	Candidates(ctx context.Context, area Area) ([]Candidate, error)
}

// StaticSupplier serves a fixed, caller-provided pool regardless of area.
type StaticSupplier []Candidate

func (s StaticSupplier) Candidates(_ context.Context, _ Area) ([]Candidate, error) {
	out := make([]Candidate, len(s))
	copy(out, s)
	return out, nil
}
