package geocoding

import (
	"context"

	"github.com/UnknownOlympus/courier/internal/models"
)

// Provider resolves a location name (e.g. "Chicago, USA") to coordinates.
type Provider interface {
	Geocode(ctx context.Context, name string) (*models.Coordinates, error)
}
