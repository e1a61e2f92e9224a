// Package pathfinder finds minimum-distance routes over a location graph.
//
// The search is Dijkstra's algorithm with a binary heap and lazy decrease-key:
// improved tentative distances are pushed again and stale entries are skipped
// when popped. Entries with equal distance leave the heap in the order they
// were pushed, and a tentative distance is only replaced by a strictly smaller
// one, so among several minimum-weight paths the one discovered first wins.
// For a fixed graph the result is therefore reproducible.
//
// Each call allocates its own search state; the graph is only read.
package pathfinder

import (
	"container/heap"
	"math"
	"slices"

	"github.com/UnknownOlympus/courier/internal/graph"
)

// Result is the outcome of a single query. When Found is false there is no
// route between the locations, Path is empty and Weight is +Inf.
type Result struct {
	Path   []string // Path lists the locations from start to end.
	Weight float64  // Weight is the total distance in kilometers.
	Found  bool     // Found reports whether start and end are connected.
}

// NotFound returns the result for disconnected locations.
func NotFound() Result {
	return Result{Path: []string{}, Weight: math.Inf(1)}
}

// ShortestPath returns the minimum-weight path between start and end.
//
// A missing start or end is reported as *NodeNotFoundError. Disconnected
// locations are not an error: the returned Result has Found == false.
// When start == end the single-node path is returned without searching.
func ShortestPath(g *graph.Graph, start, end string) (Result, error) {
	if g == nil {
		return NotFound(), ErrNilGraph
	}
	if !g.HasNode(start) {
		return NotFound(), &NodeNotFoundError{Name: start, Role: RoleStart}
	}
	if !g.HasNode(end) {
		return NotFound(), &NodeNotFoundError{Name: end, Role: RoleEnd}
	}

	if start == end {
		return Result{Path: []string{start}, Weight: 0, Found: true}, nil
	}

	r := newRunner(g, start)
	if !r.search(end) {
		return NotFound(), nil
	}

	return Result{Path: r.path(end), Weight: r.dist[end], Found: true}, nil
}

// runner holds the mutable state of one search.
type runner struct {
	g         *graph.Graph
	dist      map[string]float64 // tentative distances of discovered nodes
	prev      map[string]string  // predecessor on the best known path
	finalized map[string]bool
	pq        frontier
	seq       uint64
}

func newRunner(g *graph.Graph, start string) *runner {
	n := g.NodeCount()
	r := &runner{
		g:         g,
		dist:      make(map[string]float64, n),
		prev:      make(map[string]string, n),
		finalized: make(map[string]bool, n),
		pq:        make(frontier, 0, n),
	}
	r.dist[start] = 0
	r.push(start, 0)

	return r
}

func (r *runner) push(name string, dist float64) {
	heap.Push(&r.pq, &item{name: name, dist: dist, seq: r.seq})
	r.seq++
}

// search runs until end is finalized or the frontier is empty.
func (r *runner) search(end string) bool {
	for r.pq.Len() > 0 {
		it := heap.Pop(&r.pq).(*item)
		if r.finalized[it.name] || it.dist > r.dist[it.name] {
			continue
		}
		r.finalized[it.name] = true

		if it.name == end {
			return true
		}

		r.g.EachNeighbor(it.name, func(e graph.Edge) {
			r.relax(it, e)
		})
	}

	return false
}

// relax lowers the tentative distance of e.To through it when strictly shorter.
func (r *runner) relax(it *item, e graph.Edge) {
	if r.finalized[e.To] {
		return
	}
	candidate := it.dist + e.Weight
	if best, seen := r.dist[e.To]; seen && candidate >= best {
		return
	}
	r.dist[e.To] = candidate
	r.prev[e.To] = it.name
	r.push(e.To, candidate)
}

// path walks the predecessor chain back from end.
func (r *runner) path(end string) []string {
	path := []string{end}
	for node := end; ; {
		p, ok := r.prev[node]
		if !ok {
			break
		}
		path = append(path, p)
		node = p
	}

	slices.Reverse(path)

	return path
}
