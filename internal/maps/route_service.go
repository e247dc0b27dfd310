// README: Google Directions client used as an alternative route source for corridor matching.
package maps

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"campusride/internal/types"
)

var ErrNoRoute = errors.New("no route found")

// RouteService handles interactions with Google Maps API.
type RouteService struct {
	client *maps.Client
	region string
}

// NewRouteService creates a RouteService with the given API key. Extra client
// options (such as maps.WithBaseURL) are passed through.
func NewRouteService(apiKey, region string, opts ...maps.ClientOption) (*RouteService, error) {
	opts = append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client, region: region}, nil
}

// Polyline returns the decoded overview polyline of the first driving route
// from origin to destination.
func (s *RouteService) Polyline(ctx context.Context, origin, destination types.Point) ([]types.Point, error) {
	r := &maps.DirectionsRequest{
		Origin:      origin.String(),
		Destination: destination.String(),
		Mode:        maps.TravelModeDriving,
		Region:      s.region,
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 {
		return nil, ErrNoRoute
	}

	coords, err := routes[0].OverviewPolyline.Decode()
	if err != nil {
		return nil, fmt.Errorf("decode overview polyline: %w", err)
	}
	out := make([]types.Point, len(coords))
	for i, c := range coords {
		out[i] = types.Point{Lat: c.Lat, Lng: c.Lng}
	}
	return out, nil
}
