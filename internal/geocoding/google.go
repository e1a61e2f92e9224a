package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/courier/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider geocodes location names with the Google Maps Geocoding API.
type GoogleProvider struct {
	client GoogleAPIClient
	log    *slog.Logger
}

// GoogleAPIClient is the part of *maps.Client used by GoogleProvider.
type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// ErrEmptyResponse is returned when the Google Maps API responds with an empty result.
var ErrEmptyResponse = errors.New("get empty response from Google Maps API")

// NewGoogleProvider wraps a Google Maps client.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Geocode returns the coordinates of the first result Google Maps reports for name.
func (gp *GoogleProvider) Geocode(ctx context.Context, name string) (*models.Coordinates, error) {
	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "location", name)

	results, err := gp.client.Geocode(ctx, &maps.GeocodingRequest{Address: name})
	if err != nil {
		return nil, fmt.Errorf("failed to geocode location: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrEmptyResponse
	}
	loc := results[0].Geometry.Location

	return &models.Coordinates{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}
