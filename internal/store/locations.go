package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/capricallctx/campcrap/internal/model"
)

// CreateLocation creates a new location. No uniqueness check on name.
func CreateLocation(ctx context.Context, db *sql.DB, name, description, year string) (*model.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("location name required")
	}
	if year == "" {
		return nil, fmt.Errorf("location year required")
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO locations (name, description, year) VALUES (?, ?, ?)`,
		name, nullable(description), year,
	)
	if err != nil {
		return nil, fmt.Errorf("creating location: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting location id: %w", err)
	}

	return GetLocation(ctx, db, id)
}

// GetLocation returns a location by ID.
func GetLocation(ctx context.Context, db *sql.DB, id int64) (*model.Location, error) {
	l := &model.Location{}
	var description sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, name, description, year FROM locations WHERE id = ?`, id,
	).Scan(&l.ID, &l.Name, &description, &l.Year)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting location: %w", err)
	}
	l.Description = description.String
	return l, nil
}

// ListLocations returns all locations for a year ordered by name.
func ListLocations(ctx context.Context, db *sql.DB, year string) ([]model.Location, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, description, year FROM locations WHERE year = ? ORDER BY name ASC`, year,
	)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	defer rows.Close()

	var locations []model.Location
	for rows.Next() {
		var l model.Location
		var description sql.NullString
		if err := rows.Scan(&l.ID, &l.Name, &description, &l.Year); err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}
		l.Description = description.String
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

// UpdateLocation updates a location's name and description.
func UpdateLocation(ctx context.Context, db *sql.DB, id int64, name, description string) error {
	if name == "" {
		return fmt.Errorf("location name cannot be empty")
	}
	_, err := db.ExecContext(ctx,
		`UPDATE locations SET name = ?, description = ? WHERE id = ?`,
		name, nullable(description), id,
	)
	if err != nil {
		return fmt.Errorf("updating location: %w", err)
	}
	return nil
}

// EnsureCampStorageLocation returns the id of the year's "Camp Storage"
// location, creating it on first access. Safe to call repeatedly. Items
// without an explicit spot default here.
func EnsureCampStorageLocation(ctx context.Context, db *sql.DB, year string) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx,
		`SELECT id FROM locations WHERE year = ? AND name = ? LIMIT 1`,
		year, model.CampStorageName,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("looking up camp storage: %w", err)
	}

	l, err := CreateLocation(ctx, db, model.CampStorageName, model.CampStorageDescription, year)
	if err != nil {
		return 0, fmt.Errorf("creating camp storage: %w", err)
	}
	return l.ID, nil
}

// HasLocationsForYear reports whether any locations exist for a year.
func HasLocationsForYear(ctx context.Context, db *sql.DB, year string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM locations WHERE year = ?`, year,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking locations for year: %w", err)
	}
	return count > 0, nil
}
