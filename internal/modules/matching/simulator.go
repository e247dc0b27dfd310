// README: Demo fixture: a dummy Pune route with three waiting hostelites.
package matching

import (
	"context"

	"campusride/internal/types"
)

var demoDestination = types.Point{Lat: 18.51, Lng: 73.83}

// Simulator supplies a fixed demo trip. It also satisfies CandidateSupplier.
type Simulator struct{}

// Route returns the demo rider route, ending at the demo destination.
func (Simulator) Route() []types.Point {
	return []types.Point{
		{Lat: 18.56, Lng: 73.8567},
		{Lat: 18.55, Lng: 73.85},
		{Lat: 18.54, Lng: 73.845},
		{Lat: 18.535, Lng: 73.842},
		{Lat: 18.53, Lng: 73.84},
		{Lat: 18.525, Lng: 73.838},
		{Lat: 18.52, Lng: 73.835},
		{Lat: 18.515, Lng: 73.832},
		demoDestination,
	}
}

func (Simulator) Destination() types.Point {
	return demoDestination
}

func (Simulator) Candidates(_ context.Context, _ Area) ([]Candidate, error) {
	return []Candidate{
		{
			ID:          "h001",
			Name:        "Rahul Sharma",
			Position:    types.Point{Lat: 18.548, Lng: 73.8445},
			Destination: demoDestination,
			Contact:     "+91-9876543210",
		},
		{
			ID:          "h002",
			Name:        "Priya Patel",
			Position:    types.Point{Lat: 18.528, Lng: 73.845},
			Destination: demoDestination,
			Contact:     "+91-9876543211",
		},
		{
			ID:          "h003",
			Name:        "Arjun Kumar",
			Position:    types.Point{Lat: 18.518, Lng: 73.828},
			Destination: demoDestination,
			Contact:     "+91-9876543212",
		},
	}, nil
}
