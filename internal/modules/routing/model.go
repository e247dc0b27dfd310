// README: Graph description, node and path result types for campus routing.
package routing

import (
	"math"

	"campusride/internal/types"
)

// Node is a graph vertex (an intersection, gate or landmark).
type Node struct {
	ID  string  `json:"id" yaml:"id"`
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

func (n Node) Point() types.Point {
	return types.Point{Lat: n.Lat, Lng: n.Lng}
}

// EdgeRef is an undirected connection; its weight is derived from the endpoint coordinates.
type EdgeRef struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Description is the external, versioned artifact a Graph is built from.
type Description struct {
	Nodes []Node    `json:"nodes" yaml:"nodes"`
	Edges []EdgeRef `json:"edges" yaml:"edges"`
}

// Path is the output of a single shortest-path search.
type Path struct {
	DistanceKm float64
	NodeIDs    []string
}

// Reachable is false when the search exhausted the graph without reaching the end node.
func (p Path) Reachable() bool {
	return len(p.NodeIDs) > 0 && !math.IsInf(p.DistanceKm, 1)
}

// Result is the routeToDestination answer consumed by the HTTP layer.
type Result struct {
	StartNode  string
	EndNode    string
	DistanceKm float64
	NodeIDs    []string
	Path       []types.Point
}

// Found reports whether a route to the destination exists.
func (r Result) Found() bool {
	return len(r.NodeIDs) > 0
}
