// README: Routing service snaps a start coordinate to the graph and routes it to the fixed destination.
package routing

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"campusride/internal/types"
)

var ErrNoRoute = errors.New("no route found")

type Service struct {
	graph         atomic.Pointer[Graph]
	destinationID string
	log           logrus.FieldLogger
}

// NewService builds the initial graph. A load failure is fatal for the caller:
// the service cannot exist without a valid graph.
func NewService(desc Description, destinationID string, log logrus.FieldLogger) (*Service, error) {
	g, err := Load(desc, destinationID)
	if err != nil {
		return nil, err
	}
	s := &Service{destinationID: destinationID, log: log}
	s.graph.Store(g)
	s.log.WithFields(logrus.Fields{
		"nodes":       g.Len(),
		"destination": destinationID,
	}).Info("routing graph loaded")
	return s, nil
}

// Graph returns the current graph snapshot.
func (s *Service) Graph() *Graph {
	return s.graph.Load()
}

// Reload builds a new graph and swaps it in. On failure the previous graph stays active.
func (s *Service) Reload(desc Description) error {
	g, err := Load(desc, s.destinationID)
	if err != nil {
		s.log.WithError(err).Warn("routing graph reload rejected")
		return err
	}
	s.graph.Store(g)
	s.log.WithField("nodes", g.Len()).Info("routing graph reloaded")
	return nil
}

// Destination returns the fixed destination node.
func (s *Service) Destination() Node {
	n, _ := s.Graph().Node(s.destinationID)
	return n
}

// RouteToDestination resolves the nearest node to (lat, lng) and returns the
// shortest path from it to the destination. An empty NodeIDs list means the
// destination is unreachable from that node.
func (s *Service) RouteToDestination(lat, lng float64) (Result, error) {
	g := s.Graph()
	start, err := g.NearestNode(lat, lng)
	if err != nil {
		return Result{}, err
	}
	path, err := g.ShortestPath(start, g.DestinationID())
	if err != nil {
		return Result{}, err
	}
	return Result{
		StartNode:  start,
		EndNode:    g.DestinationID(),
		DistanceKm: path.DistanceKm,
		NodeIDs:    path.NodeIDs,
		Path:       g.Coordinates(path.NodeIDs),
	}, nil
}

// Polyline routes origin over the graph. The graph has a single fixed
// destination, so the destination argument is not consulted.
func (s *Service) Polyline(_ context.Context, origin, _ types.Point) ([]types.Point, error) {
	res, err := s.RouteToDestination(origin.Lat, origin.Lng)
	if err != nil {
		return nil, err
	}
	if !res.Found() {
		return nil, ErrNoRoute
	}
	return res.Path, nil
}
