// README: Dijkstra shortest path over the campus graph.
package routing

import (
	"container/heap"
	"fmt"
	"math"
)

// ShortestPath runs Dijkstra from startID to endID. An unreachable end node
// yields a Path with infinite distance and no node ids; it is not an error.
func (g *Graph) ShortestPath(startID, endID string) (Path, error) {
	if _, ok := g.index[startID]; !ok {
		return Path{}, fmt.Errorf("%w: %q", ErrUnknownNode, startID)
	}
	if _, ok := g.index[endID]; !ok {
		return Path{}, fmt.Errorf("%w: %q", ErrUnknownNode, endID)
	}
	if startID == endID {
		return Path{DistanceKm: 0, NodeIDs: []string{startID}}, nil
	}

	dist := make(map[string]float64, len(g.nodes))
	prev := make(map[string]string, len(g.nodes))
	for _, n := range g.nodes {
		dist[n.ID] = math.Inf(1)
	}
	dist[startID] = 0

	pq := &priorityQueue{}
	heap.Push(pq, &pqItem{node: startID, priority: 0})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		u := item.node
		// The queue has no decrease-key, so outdated entries are dropped here.
		if item.priority > dist[u] {
			continue
		}
		if u == endID {
			break
		}
		for _, v := range g.links[u] {
			nd := item.priority + g.adj[u][v]
			if nd < dist[v] {
				dist[v] = nd
				prev[v] = u
				heap.Push(pq, &pqItem{node: v, priority: nd})
			}
		}
	}

	if math.IsInf(dist[endID], 1) {
		return Path{DistanceKm: math.Inf(1)}, nil
	}
	return Path{DistanceKm: dist[endID], NodeIDs: reconstructPath(prev, startID, endID)}, nil
}

func reconstructPath(prev map[string]string, startID, endID string) []string {
	var path []string
	for cur := endID; ; cur = prev[cur] {
		path = append(path, cur)
		if cur == startID {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type pqItem struct {
	node     string
	priority float64
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int           { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool { return pq[i].priority < pq[j].priority }
func (pq priorityQueue) Swap(i, j int)      { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x interface{}) {
	item := x.(*pqItem)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}
