// Package source adapts external data into the two inputs the route graph is
// built from: a coordinate per location name and a list of direct connections.
package source

import (
	"context"

	"github.com/UnknownOlympus/courier/internal/models"
)

// Source loads a fully materialized location set.
type Source interface {
	Load(ctx context.Context) (map[string]models.Coordinates, []models.Connection, error)
}
