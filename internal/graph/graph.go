// Package graph holds the undirected, distance-weighted location graph.
//
// A Graph is built once from a coordinate mapping and a connection list and is
// read-only afterwards, so any number of searches may share it concurrently.
package graph

import (
	"slices"

	"github.com/UnknownOlympus/courier/internal/models"
)

// Edge is one direction of an undirected link, as seen from its source node.
type Edge struct {
	To     string  // To is the neighbor location name.
	Weight float64 // Weight is the great-circle distance in kilometers.
}

// Stats describes what the builder kept and what it filtered out.
type Stats struct {
	Nodes              int // Nodes is the number of locations with valid coordinates.
	Edges              int // Edges is the number of distinct undirected edges.
	InvalidCoordinates int // InvalidCoordinates counts locations dropped for bad coordinates.
	UnknownEndpoints   int // UnknownEndpoints counts connections naming a location without coordinates.
	SelfLoops          int // SelfLoops counts connections from a location to itself.
	Duplicates         int // Duplicates counts connections collapsed into an existing edge.
}

// Graph is an undirected weighted graph keyed by location name.
type Graph struct {
	order  []string                      // node names in insertion order
	coords map[string]models.Coordinates // node name -> coordinates
	adj    map[string][]Edge             // node name -> edges in discovery order
	stats  Stats
}

// HasNode reports whether name is a node of the graph.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.coords[name]
	return ok
}

// Nodes returns the node names in insertion order.
func (g *Graph) Nodes() []string {
	return slices.Clone(g.order)
}

// Coordinates returns the coordinates of a node.
func (g *Graph) Coordinates(name string) (models.Coordinates, bool) {
	c, ok := g.coords[name]
	return c, ok
}

// Neighbors returns the edges leaving name in the order they were discovered.
// The returned slice is a copy.
func (g *Graph) Neighbors(name string) []Edge {
	return slices.Clone(g.adj[name])
}

// EachNeighbor calls fn for every edge leaving name, in discovery order,
// without copying the adjacency list.
func (g *Graph) EachNeighbor(name string, fn func(Edge)) {
	for _, e := range g.adj[name] {
		fn(e)
	}
}

// Weight returns the weight of the edge between a and b, if there is one.
func (g *Graph) Weight(a, b string) (float64, bool) {
	for _, e := range g.adj[a] {
		if e.To == b {
			return e.Weight, true
		}
	}

	return 0, false
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.order)
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	return g.stats.Edges
}

// Stats returns the build statistics.
func (g *Graph) Stats() Stats {
	return g.stats
}
