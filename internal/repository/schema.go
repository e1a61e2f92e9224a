package repository

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed migrations/001_init.sql
var schema string

// Migrate creates the locations and connections tables if they do not exist.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}
