// Package tagscan resolves physical tag identifiers to items. The radio
// itself lives behind the Scanner capability; this package only consumes the
// opaque identifier a scan yields.
package tagscan

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/capricallctx/campcrap/internal/model"
	"github.com/capricallctx/campcrap/internal/store"
)

// Scanner is the capability surface of a tag reader. Implementations wrap
// whatever hardware or transport actually produces scans.
type Scanner interface {
	// Supported reports whether a reader is present at all.
	Supported() bool
	// Enabled reports whether the reader is currently active.
	Enabled() bool
	// Scans yields one opaque identifier per scan event.
	Scans() <-chan string
}

// Lookup resolves a scanned tag identifier to its active item and records a
// sighting. Returns (nil, nil) when no active item carries the tag; no
// sighting is written in that case.
func Lookup(ctx context.Context, db *sql.DB, tagID string) (*model.Item, error) {
	if tagID == "" {
		return nil, fmt.Errorf("empty tag identifier")
	}

	item, err := store.GetItemByTag(ctx, db, tagID)
	if err != nil {
		return nil, fmt.Errorf("looking up tag: %w", err)
	}
	if item == nil {
		return nil, nil
	}

	if _, err := store.RecordSighting(ctx, db, item.ID); err != nil {
		return nil, fmt.Errorf("recording sighting: %w", err)
	}

	// Re-read so the caller sees the sighting it just caused.
	return store.GetItem(ctx, db, item.ID)
}

// Relocate moves an item to a new location after a scan confirmed where it
// actually is.
func Relocate(ctx context.Context, db *sql.DB, itemID, locationID int64) error {
	location, err := store.GetLocation(ctx, db, locationID)
	if err != nil {
		return fmt.Errorf("checking location: %w", err)
	}
	if location == nil {
		return fmt.Errorf("location %d not found", locationID)
	}

	if err := store.UpdateItem(ctx, db, itemID, model.ItemUpdate{LocationID: &locationID}); err != nil {
		return fmt.Errorf("relocating item: %w", err)
	}
	return nil
}

// Assign binds a tag identifier to an item. The store's partial unique index
// rejects a tag already carried by another active item.
func Assign(ctx context.Context, db *sql.DB, itemID int64, tagID string) error {
	if tagID == "" {
		return fmt.Errorf("empty tag identifier")
	}
	if err := store.UpdateItem(ctx, db, itemID, model.ItemUpdate{NFCUID: &tagID}); err != nil {
		return fmt.Errorf("assigning tag: %w", err)
	}
	return nil
}
