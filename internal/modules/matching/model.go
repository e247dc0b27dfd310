// README: Corridor matching candidates, match results and matcher configuration.
package matching

import (
	"errors"
	"fmt"

	"campusride/internal/types"
)

var (
	ErrInvalidRoute  = errors.New("invalid route")
	ErrInvalidConfig = errors.New("invalid matching config")
)

// Candidate is a waiting passenger (a hostelite) that may be picked up along a route.
type Candidate struct {
	ID          types.ID    `json:"id"`
	Name        string      `json:"name"`
	Position    types.Point `json:"position"`
	Destination types.Point `json:"destination"`
	Contact     string      `json:"contact,omitempty"`
}

// CorridorMatch is one candidate's placement on a route. Values belong to the
// caller of a single FindMatches run.
type CorridorMatch struct {
	Candidate            Candidate
	DistanceFromRouteM   float64
	PickupPoint          types.Point
	RouteSegmentIndex    int
	PickupOrder          int
	EstimatedTimeMinutes float64
}

const (
	DefaultCorridorWidthM        = 1000.0
	DefaultMaxCapacity           = 3
	MinCorridorWidthM            = 100.0
	MaxCorridorWidthM            = 5000.0
	defaultDestinationToleranceM = 2000.0
	// defaultMinutesPerSegment is a coarse per-segment travel estimate, not a real ETA model.
	defaultMinutesPerSegment = 2.0
)

type Config struct {
	CorridorWidthM        float64
	MaxCapacity           int
	DestinationToleranceM float64
	MinutesPerSegment     float64
}

func DefaultConfig() Config {
	return Config{
		CorridorWidthM:        DefaultCorridorWidthM,
		MaxCapacity:           DefaultMaxCapacity,
		DestinationToleranceM: defaultDestinationToleranceM,
		MinutesPerSegment:     defaultMinutesPerSegment,
	}
}

// Validate checks caller-supplied values against the accepted ranges.
func (c Config) Validate() error {
	if c.CorridorWidthM < MinCorridorWidthM || c.CorridorWidthM > MaxCorridorWidthM {
		return fmt.Errorf("%w: corridor width %.0f m outside [%.0f, %.0f]",
			ErrInvalidConfig, c.CorridorWidthM, MinCorridorWidthM, MaxCorridorWidthM)
	}
	if c.MaxCapacity < 1 {
		return fmt.Errorf("%w: max capacity must be at least 1", ErrInvalidConfig)
	}
	if c.DestinationToleranceM <= 0 {
		return fmt.Errorf("%w: destination tolerance must be positive", ErrInvalidConfig)
	}
	if c.MinutesPerSegment < 0 {
		return fmt.Errorf("%w: minutes per segment must not be negative", ErrInvalidConfig)
	}
	return nil
}

// WithOverrides returns a copy with the non-zero request values applied.
func (c Config) WithOverrides(corridorWidthM float64, maxCapacity int) Config {
	if corridorWidthM != 0 {
		c.CorridorWidthM = corridorWidthM
	}
	if maxCapacity != 0 {
		c.MaxCapacity = maxCapacity
	}
	return c
}
