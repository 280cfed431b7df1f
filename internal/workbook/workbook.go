// Package workbook serializes a year's campers, locations, and items to an
// XLSX workbook and parses workbooks back into positional row records. It
// knows nothing about merge policy; that lives in the reconcile package.
package workbook

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/capricallctx/campcrap/internal/model"
)

// Sheet name prefixes. Import matches by prefix only, so a workbook exported
// for one year can be pulled into another.
const (
	CampersPrefix   = "Campers_"
	LocationsPrefix = "Locations_"
	ItemsPrefix     = "Items_"
)

var camperHeaders = []string{
	"ID", "Name", "Email", "Real Name", "Entry Date", "Exit Date",
	"Camp Name", "Notes", "Year", "Skipping", "Years Attended",
	"Has Ticket Current Year", "Paid Dues Current Year", "Photo Path",
}

var locationHeaders = []string{"ID", "Name", "Description", "Year"}

var itemHeaders = []string{
	"ID", "Name", "Description", "Camper ID", "Camper Name",
	"Location ID", "Location Name", "Photo Path", "Year",
	"Created Date", "Removal Status",
}

// CamperRow is one parsed row of a Campers_ sheet. Row is the 1-indexed
// spreadsheet row it came from, for error reporting.
type CamperRow struct {
	Row           int
	Name          string
	Email         string
	RealName      string
	EntryDate     string
	ExitDate      string
	CampName      string
	Notes         string
	Skipping      bool
	YearsAttended string
	HasTicket     bool
	PaidDues      bool
}

// LocationRow is one parsed row of a Locations_ sheet.
type LocationRow struct {
	Row         int
	Name        string
	Description string
}

// ItemRow is one parsed row of an Items_ sheet. Camper and location are
// carried by name; ids in the source workbook are not stable across stores.
type ItemRow struct {
	Row           int
	Name          string
	Description   string
	CamperName    string
	LocationName  string
	RemovalStatus string
}

// Rows holds everything parsed from a workbook.
type Rows struct {
	Campers   []CamperRow
	Locations []LocationRow
	Items     []ItemRow
}

// Write serializes the given entities into an XLSX workbook on w. One sheet
// per entity kind, named with the year suffix.
func Write(w io.Writer, year string, campers []model.Person, locations []model.Location, items []model.Item) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4F81BD"}},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := writeCampers(f, year, campers, headerStyle); err != nil {
		return err
	}
	if err := writeLocations(f, year, locations, headerStyle); err != nil {
		return err
	}
	if err := writeItems(f, year, items, headerStyle); err != nil {
		return err
	}

	// Drop the default sheet that NewFile creates.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func newSheet(f *excelize.File, name string, headers []string, style int) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("creating sheet %s: %w", name, err)
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellStr(name, cell, h); err != nil {
			return fmt.Errorf("writing header on %s: %w", name, err)
		}
		if err := f.SetCellStyle(name, cell, cell, style); err != nil {
			return fmt.Errorf("styling header on %s: %w", name, err)
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	cell, _ := excelize.CoordinatesToCellName(1, rowNum)
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing row %d on %s: %w", rowNum, sheet, err)
	}
	return nil
}

func boolCell(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func writeCampers(f *excelize.File, year string, campers []model.Person, style int) error {
	sheet := CampersPrefix + year
	if err := newSheet(f, sheet, camperHeaders, style); err != nil {
		return err
	}
	for i, c := range campers {
		err := setRow(f, sheet, i+2, []any{
			c.ID, c.Name, c.Email, c.RealName, c.EntryDate, c.ExitDate,
			c.CampName, c.Notes, c.Year, boolCell(c.Skipping), c.YearsAttended,
			boolCell(c.HasTicket), boolCell(c.PaidDues), c.PhotoPath,
		})
		if err != nil {
			return err
		}
	}
	widths := []float64{8, 24, 32, 24, 14, 14, 24, 32, 8, 10, 24, 12, 12, 32}
	return setWidths(f, sheet, widths)
}

func writeLocations(f *excelize.File, year string, locations []model.Location, style int) error {
	sheet := LocationsPrefix + year
	if err := newSheet(f, sheet, locationHeaders, style); err != nil {
		return err
	}
	for i, l := range locations {
		err := setRow(f, sheet, i+2, []any{l.ID, l.Name, l.Description, l.Year})
		if err != nil {
			return err
		}
	}
	return setWidths(f, sheet, []float64{8, 32, 40, 8})
}

func writeItems(f *excelize.File, year string, items []model.Item, style int) error {
	sheet := ItemsPrefix + year
	if err := newSheet(f, sheet, itemHeaders, style); err != nil {
		return err
	}
	for i, it := range items {
		err := setRow(f, sheet, i+2, []any{
			it.ID, it.Name, it.Description, it.CamperID, it.CamperName,
			it.LocationID, it.LocationName, it.PhotoPath, it.Year,
			it.CreatedDate.Format("2006-01-02 15:04:05"), it.RemovalStatus,
		})
		if err != nil {
			return err
		}
	}
	return setWidths(f, sheet, []float64{8, 32, 40, 10, 24, 10, 24, 32, 8, 18, 14})
}

func setWidths(f *excelize.File, sheet string, widths []float64) error {
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("setting column width on %s: %w", sheet, err)
		}
	}
	return nil
}

// Read parses every sheet whose name carries a known prefix, regardless of
// year suffix. A failure to open the workbook is returned as an error; an
// individual missing or short row is skipped, never fatal.
func Read(r io.Reader) (*Rows, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	parsed := &Rows{}
	for _, sheet := range f.GetSheetList() {
		switch {
		case strings.HasPrefix(sheet, LocationsPrefix):
			if err := readLocations(f, sheet, parsed); err != nil {
				return nil, err
			}
		case strings.HasPrefix(sheet, CampersPrefix):
			if err := readCampers(f, sheet, parsed); err != nil {
				return nil, err
			}
		case strings.HasPrefix(sheet, ItemsPrefix):
			if err := readItems(f, sheet, parsed); err != nil {
				return nil, err
			}
		}
	}
	return parsed, nil
}

func readLocations(f *excelize.File, sheet string, parsed *Rows) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	for i := 1; i < len(rows); i++ {
		parsed.Locations = append(parsed.Locations, LocationRow{
			Row:         i + 1,
			Name:        cellString(rows[i], 1),
			Description: cellString(rows[i], 2),
		})
	}
	return nil
}

func readCampers(f *excelize.File, sheet string, parsed *Rows) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		parsed.Campers = append(parsed.Campers, CamperRow{
			Row:           i + 1,
			Name:          cellString(row, 1),
			Email:         cellString(row, 2),
			RealName:      cellString(row, 3),
			EntryDate:     cellString(row, 4),
			ExitDate:      cellString(row, 5),
			CampName:      cellString(row, 6),
			Notes:         cellString(row, 7),
			Skipping:      cellBool(row, 9),
			YearsAttended: cellString(row, 10),
			HasTicket:     cellBool(row, 11),
			PaidDues:      cellBool(row, 12),
		})
	}
	return nil
}

func readItems(f *excelize.File, sheet string, parsed *Rows) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		parsed.Items = append(parsed.Items, ItemRow{
			Row:           i + 1,
			Name:          cellString(row, 1),
			Description:   cellString(row, 2),
			CamperName:    cellString(row, 4),
			LocationName:  cellString(row, 6),
			RemovalStatus: cellString(row, 10),
		})
	}
	return nil
}

// cellString returns the cell at col, coercing numeric values to their
// integer string form. Short rows yield an empty string.
func cellString(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	s := strings.TrimSpace(row[col])
	if strings.Contains(s, ".") {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return strconv.FormatInt(int64(v), 10)
		}
	}
	return s
}

// cellBool normalizes a cell to a boolean: TRUE, YES, and 1 (case-insensitive)
// count as true, everything else as false.
func cellBool(row []string, col int) bool {
	if col >= len(row) {
		return false
	}
	switch strings.ToUpper(strings.TrimSpace(row[col])) {
	case "TRUE", "YES", "1":
		return true
	}
	return false
}
