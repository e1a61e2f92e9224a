package graph

import (
	"sort"

	"github.com/UnknownOlympus/courier/internal/geo"
	"github.com/UnknownOlympus/courier/internal/models"
)

type pair struct {
	lo, hi string
}

func newPair(a, b string) pair {
	if b < a {
		a, b = b, a
	}
	return pair{lo: a, hi: b}
}

// Build creates a Graph from a coordinate mapping and a list of connections.
//
// Locations with invalid coordinates are left out. Nodes are inserted in
// lexicographic name order, edges in connection order, which fixes the order a
// search discovers them in. Connections naming an unknown location, connecting
// a location to itself or repeating an existing edge (in either direction) are
// skipped. The inputs are not modified.
func Build(coordinates map[string]models.Coordinates, connections []models.Connection) *Graph {
	g := &Graph{
		order:  make([]string, 0, len(coordinates)),
		coords: make(map[string]models.Coordinates, len(coordinates)),
		adj:    make(map[string][]Edge, len(coordinates)),
	}

	for name, c := range coordinates {
		if !geo.Valid(c) {
			g.stats.InvalidCoordinates++
			continue
		}
		g.order = append(g.order, name)
		g.coords[name] = c
	}
	sort.Strings(g.order)
	g.stats.Nodes = len(g.order)

	seen := make(map[pair]struct{}, len(connections))
	for _, conn := range connections {
		from, okFrom := g.coords[conn.From]
		to, okTo := g.coords[conn.To]

		switch {
		case !okFrom || !okTo:
			g.stats.UnknownEndpoints++
			continue
		case conn.From == conn.To:
			g.stats.SelfLoops++
			continue
		}

		key := newPair(conn.From, conn.To)
		if _, dup := seen[key]; dup {
			g.stats.Duplicates++
			continue
		}
		seen[key] = struct{}{}

		weight := geo.Distance(from, to)
		g.adj[conn.From] = append(g.adj[conn.From], Edge{To: conn.To, Weight: weight})
		g.adj[conn.To] = append(g.adj[conn.To], Edge{To: conn.From, Weight: weight})
		g.stats.Edges++
	}

	return g
}
