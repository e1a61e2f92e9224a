package repository

import (
	"context"
	"log/slog"

	"github.com/UnknownOlympus/courier/internal/models"
)

type Repository struct {
	db  Database
	log *slog.Logger
}

// Interface is the location store used by the geocoding worker and the route source.
type Interface interface {
	FetchLocations(ctx context.Context) (map[string]models.Coordinates, error)
	FetchConnections(ctx context.Context) ([]models.Connection, error)
	FetchLocationsForGeocoding(ctx context.Context, limit int) ([]models.GeocodeTask, error)
	UpdateLocationCoordinates(ctx context.Context, locationID int, coords models.Coordinates) error
	IncrementFailureCount(ctx context.Context, locationID int, errMsg string) error
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
