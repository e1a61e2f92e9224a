package pathfinder

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the solver.
var (
	// ErrNilGraph indicates that a nil *graph.Graph was passed to the solver.
	ErrNilGraph = errors.New("pathfinder: graph is nil")

	// ErrNodeNotFound indicates that the start or end location is not a node of the graph.
	ErrNodeNotFound = errors.New("pathfinder: node not found in graph")
)

// Role tells which query endpoint an error refers to.
type Role string

const (
	RoleStart Role = "start"
	RoleEnd   Role = "end"
)

// NodeNotFoundError names the query endpoint missing from the graph.
// It matches ErrNodeNotFound with errors.Is.
type NodeNotFoundError struct {
	Name string
	Role Role
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("%s location %q not found in graph", e.Role, e.Name)
}

func (e *NodeNotFoundError) Unwrap() error {
	return ErrNodeNotFound
}
