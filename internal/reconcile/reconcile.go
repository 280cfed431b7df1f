// Package reconcile merges workbook rows into the record store for a target
// year without creating duplicates. Items reference campers and locations by
// name, so the import order is fixed: locations, then campers, then items.
// Row failures are collected, never thrown; one bad row must not abort the
// batch.
package reconcile

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/capricallctx/campcrap/internal/model"
	"github.com/capricallctx/campcrap/internal/store"
	"github.com/capricallctx/campcrap/internal/workbook"
)

// Result accumulates the outcome of an import. Counts and errors are data
// for the caller to render; only FatalError means nothing was processed.
type Result struct {
	CampersImported   int      `json:"campers_imported"`
	CampersSkipped    int      `json:"campers_skipped"`
	LocationsImported int      `json:"locations_imported"`
	LocationsSkipped  int      `json:"locations_skipped"`
	ItemsImported     int      `json:"items_imported"`
	ItemsSkipped      int      `json:"items_skipped"`
	Errors            []string `json:"errors,omitempty"`
	FatalError        string   `json:"error,omitempty"`
}

// TotalImported sums imports across entity kinds.
func (r *Result) TotalImported() int {
	return r.CampersImported + r.LocationsImported + r.ItemsImported
}

// TotalSkipped sums skips across entity kinds.
func (r *Result) TotalSkipped() int {
	return r.CampersSkipped + r.LocationsSkipped + r.ItemsSkipped
}

// HasErrors reports whether anything went wrong, row-level or fatal.
func (r *Result) HasErrors() bool {
	return r.FatalError != "" || len(r.Errors) > 0
}

func (r *Result) rowError(kind string, row int, err error) {
	r.Errors = append(r.Errors, fmt.Sprintf("%s row %d: %v", kind, row, err))
}

// Import parses the workbook from r and merges its rows into targetYear.
// With skipExisting (the normal mode) a row matching an existing entity is
// counted as skipped; without it the insert happens unconditionally.
// A workbook that cannot be opened at all yields a fatal result with zero
// rows processed.
func Import(ctx context.Context, db *sql.DB, r io.Reader, targetYear string, skipExisting bool) *Result {
	parsed, err := workbook.Read(r)
	if err != nil {
		return &Result{FatalError: err.Error()}
	}

	result := &Result{}
	importLocations(ctx, db, parsed.Locations, targetYear, skipExisting, result)
	importCampers(ctx, db, parsed.Campers, targetYear, skipExisting, result)
	importItems(ctx, db, parsed.Items, targetYear, skipExisting, result)
	return result
}

func importLocations(ctx context.Context, db *sql.DB, rows []workbook.LocationRow, targetYear string, skipExisting bool, result *Result) {
	existing, err := store.ListLocations(ctx, db, targetYear)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Location import error: %v", err))
		return
	}

	// Transient name index for the pass; match key is name only.
	byName := make(map[string]bool, len(existing))
	for _, l := range existing {
		byName[l.Name] = true
	}

	for _, row := range rows {
		if row.Name == "" {
			continue
		}

		if byName[row.Name] && skipExisting {
			result.LocationsSkipped++
			continue
		}

		if _, err := store.CreateLocation(ctx, db, row.Name, row.Description, targetYear); err != nil {
			result.rowError("Location", row.Row, err)
			continue
		}
		byName[row.Name] = true
		result.LocationsImported++
	}
}

func importCampers(ctx context.Context, db *sql.DB, rows []workbook.CamperRow, targetYear string, skipExisting bool, result *Result) {
	existing, err := store.ListPeople(ctx, db, targetYear, true)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Camper import error: %v", err))
		return
	}

	// Match key is the (name, email) pair.
	type key struct{ name, email string }
	seen := make(map[key]bool, len(existing))
	for _, p := range existing {
		seen[key{p.Name, p.Email}] = true
	}

	for _, row := range rows {
		if row.Name == "" {
			continue
		}

		k := key{row.Name, row.Email}
		if seen[k] && skipExisting {
			result.CampersSkipped++
			continue
		}

		_, err := store.CreatePerson(ctx, db, model.Person{
			Name:             row.Name,
			Email:            row.Email,
			RealName:         row.RealName,
			EntryDate:        row.EntryDate,
			ExitDate:         row.ExitDate,
			CampName:         row.CampName,
			Notes:            row.Notes,
			Year:             targetYear,
			Skipping:         row.Skipping,
			IsInfrastructure: row.Name == model.InfrastructureName,
			YearsAttended:    row.YearsAttended,
			HasTicket:        row.HasTicket,
			PaidDues:         row.PaidDues,
		})
		if err != nil {
			result.rowError("Camper", row.Row, err)
			continue
		}
		seen[k] = true
		result.CampersImported++
	}
}

func importItems(ctx context.Context, db *sql.DB, rows []workbook.ItemRow, targetYear string, skipExisting bool, result *Result) {
	campers, err := store.ListPeople(ctx, db, targetYear, true)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Item import error: %v", err))
		return
	}
	locations, err := store.ListLocations(ctx, db, targetYear)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Item import error: %v", err))
		return
	}
	items, err := store.ListItems(ctx, db, targetYear, true)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Item import error: %v", err))
		return
	}

	// Names resolve against the target year as it stands after the location
	// and camper passes.
	camperIDs := make(map[string]int64, len(campers))
	for _, p := range campers {
		camperIDs[p.Name] = p.ID
	}
	locationIDs := make(map[string]int64, len(locations))
	for _, l := range locations {
		locationIDs[l.Name] = l.ID
	}

	type key struct {
		name       string
		camperID   int64
		locationID int64
	}
	seen := make(map[key]bool, len(items))
	for _, it := range items {
		seen[key{it.Name, it.CamperID, it.LocationID}] = true
	}

	for _, row := range rows {
		if row.Name == "" {
			continue
		}

		camperID, okCamper := camperIDs[row.CamperName]
		locationID, okLocation := locationIDs[row.LocationName]
		if !okCamper || !okLocation {
			// The one hard per-row failure: a dangling name reference.
			result.Errors = append(result.Errors, fmt.Sprintf(
				"Item row %d: could not find camper %q or location %q",
				row.Row, row.CamperName, row.LocationName))
			continue
		}

		k := key{row.Name, camperID, locationID}
		if seen[k] && skipExisting {
			result.ItemsSkipped++
			continue
		}

		created, err := store.CreateItem(ctx, db, model.Item{
			Name:        row.Name,
			Description: row.Description,
			CamperID:    camperID,
			LocationID:  locationID,
			Year:        targetYear,
		})
		if err != nil {
			result.rowError("Item", row.Row, err)
			continue
		}

		// Creation always lands active; a removed status needs a follow-up.
		if row.RemovalStatus != "" && row.RemovalStatus != model.StatusActive {
			status := row.RemovalStatus
			if err := store.UpdateItem(ctx, db, created.ID, model.ItemUpdate{RemovalStatus: &status}); err != nil {
				result.rowError("Item", row.Row, err)
			}
		}

		seen[k] = true
		result.ItemsImported++
	}
}

// Export serializes the current state of a year, soft-removed items and the
// infrastructure record included, as a workbook on w. It is the import's
// mirror and has no merge logic.
func Export(ctx context.Context, db *sql.DB, w io.Writer, year string) error {
	campers, err := store.ListPeople(ctx, db, year, true)
	if err != nil {
		return fmt.Errorf("exporting campers: %w", err)
	}
	locations, err := store.ListLocations(ctx, db, year)
	if err != nil {
		return fmt.Errorf("exporting locations: %w", err)
	}
	items, err := store.ListItems(ctx, db, year, true)
	if err != nil {
		return fmt.Errorf("exporting items: %w", err)
	}

	return workbook.Write(w, year, campers, locations, items)
}
