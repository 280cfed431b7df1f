package tagscan

import (
	"context"
	"database/sql"
	"testing"

	"github.com/capricallctx/campcrap/internal/db"
	"github.com/capricallctx/campcrap/internal/model"
	"github.com/capricallctx/campcrap/internal/store"
)

func newTaggedItem(t *testing.T, tagID string) (*sql.DB, *model.Item) {
	t.Helper()
	database := db.NewTestDB(t)
	ctx := context.Background()

	camperID, err := store.EnsureInfrastructurePerson(ctx, database, "2025")
	if err != nil {
		t.Fatalf("EnsureInfrastructurePerson: %v", err)
	}
	locationID, err := store.EnsureCampStorageLocation(ctx, database, "2025")
	if err != nil {
		t.Fatalf("EnsureCampStorageLocation: %v", err)
	}

	item, err := store.CreateItem(ctx, database, model.Item{
		Name: "Generator", CamperID: camperID, LocationID: locationID,
		Year: "2025", NFCUID: tagID,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	return database, item
}

func TestLookupRecordsSighting(t *testing.T) {
	database, item := newTaggedItem(t, "04A1B2C3")
	ctx := context.Background()

	found, err := Lookup(ctx, database, "04A1B2C3")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if found == nil || found.ID != item.ID {
		t.Fatalf("expected item %d, got %+v", item.ID, found)
	}
	if found.LastSighting == nil {
		t.Error("expected sighting recorded on lookup")
	}
	if found.CamperName == "" || found.LocationName == "" {
		t.Errorf("expected resolved names, got %q at %q", found.CamperName, found.LocationName)
	}
}

func TestLookupUnknownTag(t *testing.T) {
	database, item := newTaggedItem(t, "04A1B2C3")
	ctx := context.Background()

	found, err := Lookup(ctx, database, "FFFFFFFF")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if found != nil {
		t.Fatalf("expected not-found, got %+v", found)
	}

	// A miss must not stamp anything.
	got, _ := store.GetItem(ctx, database, item.ID)
	if got.LastSighting != nil {
		t.Error("expected no sighting after unknown-tag lookup")
	}
}

func TestLookupIgnoresRemovedItems(t *testing.T) {
	database, item := newTaggedItem(t, "04A1B2C3")
	ctx := context.Background()

	status := model.StatusTrashed
	if err := store.UpdateItem(ctx, database, item.ID, model.ItemUpdate{RemovalStatus: &status}); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	found, err := Lookup(ctx, database, "04A1B2C3")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if found != nil {
		t.Errorf("expected trashed item invisible to lookup, got %+v", found)
	}
}

func TestRelocate(t *testing.T) {
	database, item := newTaggedItem(t, "04A1B2C3")
	ctx := context.Background()

	dest, err := store.CreateLocation(ctx, database, "Generator Pad", "", "2025")
	if err != nil {
		t.Fatalf("CreateLocation: %v", err)
	}

	if err := Relocate(ctx, database, item.ID, dest.ID); err != nil {
		t.Fatalf("Relocate: %v", err)
	}

	got, _ := store.GetItem(ctx, database, item.ID)
	if got.LocationID != dest.ID {
		t.Errorf("expected location %d, got %d", dest.ID, got.LocationID)
	}

	if err := Relocate(ctx, database, item.ID, 9999); err == nil {
		t.Error("expected error for unknown location")
	}
}

func TestAssignTag(t *testing.T) {
	database, item := newTaggedItem(t, "")
	ctx := context.Background()

	if err := Assign(ctx, database, item.ID, "CAFEBABE"); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	found, err := Lookup(ctx, database, "CAFEBABE")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if found == nil || found.ID != item.ID {
		t.Errorf("expected assigned tag to resolve, got %+v", found)
	}

	if err := Assign(ctx, database, item.ID, ""); err == nil {
		t.Error("expected error for empty tag")
	}
}
