package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/capricallctx/campcrap/internal/model"
)

// CreateItem creates a new item with removal status active. Referential
// integrity of camper/location ids against the item's year is the caller's
// concern; the reconciliation engine resolves names before calling this.
func CreateItem(ctx context.Context, db *sql.DB, it model.Item) (*model.Item, error) {
	if it.Name == "" {
		return nil, fmt.Errorf("item name required")
	}
	if it.Year == "" {
		return nil, fmt.Errorf("item year required")
	}
	if it.CamperID == 0 {
		return nil, fmt.Errorf("item camper required")
	}
	if it.LocationID == 0 {
		return nil, fmt.Errorf("item location required")
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO items (name, description, camper_id, location_id, photo_path, year, nfc_uid)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		it.Name, nullable(it.Description), it.CamperID, it.LocationID,
		nullable(it.PhotoPath), it.Year, nullable(it.NFCUID),
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// itemQuery joins camper and location names for display.
const itemQuery = `
	SELECT i.id, i.name, i.description, i.camper_id, i.location_id, i.photo_path,
	       i.year, i.created_date, i.removal_status, i.nfc_uid, i.last_sighting,
	       COALESCE(p.name, '') AS camper_name, COALESCE(l.name, '') AS location_name
	FROM items i
	LEFT JOIN people p ON p.id = i.camper_id
	LEFT JOIN locations l ON l.id = i.location_id`

func scanItem(row interface{ Scan(...any) error }) (*model.Item, error) {
	it := &model.Item{}
	var description, photoPath, nfcUID sql.NullString
	var lastSighting sql.NullTime
	err := row.Scan(&it.ID, &it.Name, &description, &it.CamperID, &it.LocationID,
		&photoPath, &it.Year, &it.CreatedDate, &it.RemovalStatus, &nfcUID,
		&lastSighting, &it.CamperName, &it.LocationName)
	if err != nil {
		return nil, err
	}
	it.Description = description.String
	it.PhotoPath = photoPath.String
	it.NFCUID = nfcUID.String
	if lastSighting.Valid {
		t := lastSighting.Time
		it.LastSighting = &t
	}
	return it, nil
}

// GetItem returns an item by ID, regardless of removal status.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	row := db.QueryRowContext(ctx, itemQuery+` WHERE i.id = ?`, id)
	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return it, nil
}

// GetItemByTag returns the active item carrying the given tag identifier.
// Removed items are ignored so their tags can be reassigned.
func GetItemByTag(ctx context.Context, db *sql.DB, nfcUID string) (*model.Item, error) {
	row := db.QueryRowContext(ctx,
		itemQuery+` WHERE i.nfc_uid = ? AND i.removal_status = ?`,
		nfcUID, model.StatusActive,
	)
	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item by tag: %w", err)
	}
	return it, nil
}

// ListItems returns a year's items, newest first, joined with camper and
// location names. With includeRemoved false only active items are returned.
func ListItems(ctx context.Context, db *sql.DB, year string, includeRemoved bool) ([]model.Item, error) {
	var rows *sql.Rows
	var err error

	if includeRemoved {
		rows, err = db.QueryContext(ctx,
			itemQuery+` WHERE i.year = ? ORDER BY i.created_date DESC, i.id DESC`, year,
		)
	} else {
		rows, err = db.QueryContext(ctx,
			itemQuery+` WHERE i.year = ? AND i.removal_status = ?
			 ORDER BY i.created_date DESC, i.id DESC`, year, model.StatusActive,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// UpdateItem applies a partial update. Nil fields in upd are left unchanged.
// Status transitions are unrestricted, including back to active.
func UpdateItem(ctx context.Context, db *sql.DB, id int64, upd model.ItemUpdate) error {
	var sets []string
	var args []any

	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if upd.Name != nil {
		if *upd.Name == "" {
			return fmt.Errorf("item name cannot be empty")
		}
		set("name", *upd.Name)
	}
	if upd.Description != nil {
		set("description", nullable(*upd.Description))
	}
	if upd.CamperID != nil {
		set("camper_id", *upd.CamperID)
	}
	if upd.LocationID != nil {
		set("location_id", *upd.LocationID)
	}
	if upd.PhotoPath != nil {
		set("photo_path", nullable(*upd.PhotoPath))
	}
	if upd.RemovalStatus != nil {
		if !model.ValidStatus(*upd.RemovalStatus) {
			return fmt.Errorf("invalid removal status %q", *upd.RemovalStatus)
		}
		set("removal_status", *upd.RemovalStatus)
	}
	if upd.NFCUID != nil {
		set("nfc_uid", nullable(*upd.NFCUID))
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	_, err := db.ExecContext(ctx,
		`UPDATE items SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

// RecordSighting stamps an item's last sighting with the current time.
// Returns false without error when the item does not exist.
func RecordSighting(ctx context.Context, db *sql.DB, itemID int64) (bool, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET last_sighting = CURRENT_TIMESTAMP WHERE id = ?`, itemID,
	)
	if err != nil {
		return false, fmt.Errorf("recording sighting: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking sighting update: %w", err)
	}
	return n > 0, nil
}
