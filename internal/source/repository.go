package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/courier/internal/models"
	"github.com/UnknownOlympus/courier/internal/repository"
)

// RepositorySource loads geocoded locations and connections from the database.
// Locations that are not geocoded yet are simply absent.
type RepositorySource struct {
	repo repository.Interface
	log  *slog.Logger
}

// NewRepositorySource creates a source backed by repo.
func NewRepositorySource(repo repository.Interface, log *slog.Logger) *RepositorySource {
	return &RepositorySource{repo: repo, log: log}
}

// Load fetches locations and connections.
func (s *RepositorySource) Load(ctx context.Context) (map[string]models.Coordinates, []models.Connection, error) {
	coords, err := s.repo.FetchLocations(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load locations: %w", err)
	}

	conns, err := s.repo.FetchConnections(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load connections: %w", err)
	}

	s.log.DebugContext(ctx, "Loaded locations from repository", "locations", len(coords), "connections", len(conns))

	return coords, conns, nil
}
