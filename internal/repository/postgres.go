package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/courier/internal/models"
)

// MaxGeocodingAttempts is how many times a location is sent to the provider before it is given up on.
const MaxGeocodingAttempts = 5

// FetchLocations returns every location that already has coordinates, keyed by name.
func (r *Repository) FetchLocations(ctx context.Context) (map[string]models.Coordinates, error) {
	query := `
		SELECT name, latitude, longitude
		FROM public.locations
		WHERE latitude IS NOT NULL AND longitude IS NOT NULL;
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	locations := make(map[string]models.Coordinates)
	for rows.Next() {
		var (
			name   string
			coords models.Coordinates
		)
		if errScan := rows.Scan(&name, &coords.Latitude, &coords.Longitude); errScan != nil {
			return nil, fmt.Errorf("failed to scan location: %w", errScan)
		}
		locations[name] = coords
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	r.log.DebugContext(ctx, "Locations loaded", "count", len(locations))

	return locations, nil
}

// FetchConnections returns all direct connections in insertion order.
func (r *Repository) FetchConnections(ctx context.Context) ([]models.Connection, error) {
	query := `
		SELECT from_name, to_name
		FROM public.connections
		ORDER BY connection_id ASC;
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query connections: %w", err)
	}
	defer rows.Close()

	var connections []models.Connection
	for rows.Next() {
		var conn models.Connection
		if errScan := rows.Scan(&conn.From, &conn.To); errScan != nil {
			return nil, fmt.Errorf("failed to scan connection: %w", errScan)
		}
		connections = append(connections, conn)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	r.log.DebugContext(ctx, "Connections loaded", "count", len(connections))

	return connections, nil
}

// FetchLocationsForGeocoding retrieves locations that still need coordinates.
// It skips locations that already failed MaxGeocodingAttempts times and orders
// the rest by creation date, limited to the specified count.
func (r *Repository) FetchLocationsForGeocoding(ctx context.Context, limit int) ([]models.GeocodeTask, error) {
	var tasks []models.GeocodeTask
	query := `
		SELECT location_id, name
		FROM public.locations
		WHERE
			latitude IS NULL
			AND geocoding_attempts < $1
			AND name <> ''
		ORDER BY created_at ASC
		LIMIT $2;
	`

	rows, err := r.db.Query(ctx, query, MaxGeocodingAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations without coordinates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var task models.GeocodeTask
		if errScan := rows.Scan(&task.ID, &task.Name); errScan != nil {
			return nil, fmt.Errorf("failed to scan location without coordinates: %w", errScan)
		}
		r.log.DebugContext(ctx, "A location without coordinates has been received.",
			"ID", task.ID, "Name", task.Name)
		tasks = append(tasks, task)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return tasks, nil
}

// UpdateLocationCoordinates stores the coordinates of a location and clears its geocoding error.
func (r *Repository) UpdateLocationCoordinates(ctx context.Context, locationID int, coords models.Coordinates) error {
	query := `
		UPDATE public.locations
		SET
			latitude = $1,
			longitude = $2,
			geocoding_error = NULL
		WHERE
			location_id = $3;
	`

	_, err := r.db.Exec(ctx, query, coords.Latitude, coords.Longitude, locationID)
	if err != nil {
		return fmt.Errorf("failed to update location coordinates: %w", err)
	}

	return nil
}

// IncrementFailureCount increments the geocoding attempt count of a location
// and records the error message.
func (r *Repository) IncrementFailureCount(ctx context.Context, locationID int, errMsg string) error {
	query := `
		UPDATE public.locations
		SET
			geocoding_attempts = geocoding_attempts + 1,
			geocoding_error = $1
		WHERE location_id = $2;
	`

	_, err := r.db.Exec(ctx, query, errMsg, locationID)
	if err != nil {
		return fmt.Errorf("failed to update geocoding error and number of attempts: %w", err)
	}

	return nil
}
