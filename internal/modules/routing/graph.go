// README: Immutable in-memory weighted undirected graph with nearest-node lookup.
package routing

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"campusride/internal/geo"
	"campusride/internal/types"
)

var (
	ErrGraphLoad   = errors.New("graph load error")
	ErrEmptyGraph  = errors.New("graph has no nodes")
	ErrUnknownNode = errors.New("unknown node")
)

// Graph is built once by Load and never mutated afterwards, so it is safe for
// concurrent readers without locking.
type Graph struct {
	nodes         []Node
	index         map[string]int
	adj           map[string]map[string]float64
	links         map[string][]string
	destinationID string
}

// Load builds the node table and the symmetric adjacency. Every edge weight is
// the great-circle distance between its endpoints in kilometres.
func Load(desc Description, destinationID string) (*Graph, error) {
	g := &Graph{
		nodes:         make([]Node, 0, len(desc.Nodes)),
		index:         make(map[string]int, len(desc.Nodes)),
		adj:           make(map[string]map[string]float64, len(desc.Nodes)),
		links:         make(map[string][]string, len(desc.Nodes)),
		destinationID: destinationID,
	}

	for _, n := range desc.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("%w: node without id", ErrGraphLoad)
		}
		if _, dup := g.index[n.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate node id %q", ErrGraphLoad, n.ID)
		}
		if !n.Point().Valid() {
			return nil, fmt.Errorf("%w: node %q has out-of-range coordinates", ErrGraphLoad, n.ID)
		}
		g.index[n.ID] = len(g.nodes)
		g.nodes = append(g.nodes, n)
		g.adj[n.ID] = make(map[string]float64)
	}

	for _, e := range desc.Edges {
		a, okA := g.node(e.From)
		b, okB := g.node(e.To)
		if !okA || !okB {
			return nil, fmt.Errorf("%w: edge %s-%s references unknown node", ErrGraphLoad, e.From, e.To)
		}
		w := geo.DistanceKm(a.Point(), b.Point())
		if w == 0 {
			return nil, fmt.Errorf("%w: edge %s-%s has zero length", ErrGraphLoad, e.From, e.To)
		}
		if _, seen := g.adj[a.ID][b.ID]; !seen {
			g.links[a.ID] = append(g.links[a.ID], b.ID)
			g.links[b.ID] = append(g.links[b.ID], a.ID)
		}
		g.adj[a.ID][b.ID] = w
		g.adj[b.ID][a.ID] = w
	}

	if _, ok := g.index[destinationID]; !ok {
		return nil, fmt.Errorf("%w: destination node %q not found", ErrGraphLoad, destinationID)
	}
	return g, nil
}

// NearestNode snaps a coordinate to the closest node. Ties go to the node that
// was loaded first.
func (g *Graph) NearestNode(lat, lng float64) (string, error) {
	if len(g.nodes) == 0 {
		return "", ErrEmptyGraph
	}
	p := types.Point{Lat: lat, Lng: lng}
	bestID := ""
	bestD := math.Inf(1)
	for _, n := range g.nodes {
		if d := geo.DistanceKm(p, n.Point()); d < bestD {
			bestD = d
			bestID = n.ID
		}
	}
	return bestID, nil
}

func (g *Graph) DestinationID() string {
	return g.destinationID
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	return g.node(id)
}

// Nodes returns the nodes in load order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Weight returns the edge weight between two adjacent nodes.
func (g *Graph) Weight(a, b string) (float64, bool) {
	w, ok := g.adj[a][b]
	return w, ok
}

// Edges returns each undirected edge once, ordered by the load order of its endpoints.
func (g *Graph) Edges() []EdgeRef {
	var out []EdgeRef
	for i, n := range g.nodes {
		var later []int
		for _, id := range g.links[n.ID] {
			if j := g.index[id]; j > i {
				later = append(later, j)
			}
		}
		sort.Ints(later)
		for _, j := range later {
			out = append(out, EdgeRef{From: n.ID, To: g.nodes[j].ID})
		}
	}
	return out
}

func (g *Graph) Len() int {
	return len(g.nodes)
}

// Coordinates maps a node-id path to its coordinate polyline.
func (g *Graph) Coordinates(ids []string) []types.Point {
	out := make([]types.Point, 0, len(ids))
	for _, id := range ids {
		if n, ok := g.node(id); ok {
			out = append(out, n.Point())
		}
	}
	return out
}

func (g *Graph) node(id string) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}
