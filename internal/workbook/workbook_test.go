package workbook

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/capricallctx/campcrap/internal/model"
)

func TestWriteReadRoundTrip(t *testing.T) {
	campers := []model.Person{
		{ID: 1, Name: "Alice", Email: "a@x.com", Year: "2024", HasTicket: true},
		{ID: 2, Name: model.InfrastructureName, Notes: model.InfrastructureNotes, Year: "2024", IsInfrastructure: true},
	}
	locations := []model.Location{
		{ID: 1, Name: model.CampStorageName, Description: "Central area", Year: "2024"},
	}
	items := []model.Item{
		{
			ID: 1, Name: "Tent", Description: "6-person", CamperID: 1, CamperName: "Alice",
			LocationID: 1, LocationName: model.CampStorageName, Year: "2024",
			CreatedDate: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), RemovalStatus: model.StatusActive,
		},
		{
			ID: 2, Name: "Old Rug", CamperID: 2, CamperName: model.InfrastructureName,
			LocationID: 1, LocationName: model.CampStorageName, Year: "2024",
			CreatedDate: time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC), RemovalStatus: model.StatusTrashed,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "2024", campers, locations, items))

	parsed, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	require.Len(t, parsed.Campers, 2)
	assert.Equal(t, "Alice", parsed.Campers[0].Name)
	assert.Equal(t, "a@x.com", parsed.Campers[0].Email)
	assert.True(t, parsed.Campers[0].HasTicket)
	assert.False(t, parsed.Campers[0].Skipping)
	assert.Equal(t, 2, parsed.Campers[0].Row)
	assert.Equal(t, model.InfrastructureName, parsed.Campers[1].Name)

	require.Len(t, parsed.Locations, 1)
	assert.Equal(t, model.CampStorageName, parsed.Locations[0].Name)
	assert.Equal(t, "Central area", parsed.Locations[0].Description)

	require.Len(t, parsed.Items, 2)
	assert.Equal(t, "Tent", parsed.Items[0].Name)
	assert.Equal(t, "Alice", parsed.Items[0].CamperName)
	assert.Equal(t, model.CampStorageName, parsed.Items[0].LocationName)
	assert.Equal(t, model.StatusActive, parsed.Items[0].RemovalStatus)
	assert.Equal(t, model.StatusTrashed, parsed.Items[1].RemovalStatus)
}

func TestReadMatchesSheetPrefixAcrossYears(t *testing.T) {
	// A sheet exported for 2023 still parses when imported later; the suffix
	// only carries the source year.
	f := excelize.NewFile()
	f.NewSheet("Locations_2023")
	f.SetSheetRow("Locations_2023", "A1", &[]any{"ID", "Name", "Description", "Year"})
	f.SetSheetRow("Locations_2023", "A2", &[]any{1, "Kitchen", "", "2023"})
	f.NewSheet("Unrelated")
	f.SetSheetRow("Unrelated", "A1", &[]any{"ignored"})

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	parsed, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, parsed.Locations, 1)
	assert.Equal(t, "Kitchen", parsed.Locations[0].Name)
	assert.Empty(t, parsed.Campers)
	assert.Empty(t, parsed.Items)
}

func TestReadCoercesCellTypes(t *testing.T) {
	f := excelize.NewFile()
	f.NewSheet("Campers_2024")
	f.SetSheetRow("Campers_2024", "A1", &[]any{"ID", "Name", "Email"})
	// Numeric name cell, boolean flags in several spellings.
	f.SetCellValue("Campers_2024", "B2", 42.0)
	f.SetCellValue("Campers_2024", "J2", "yes")
	f.SetCellValue("Campers_2024", "L2", 1)
	f.SetCellValue("Campers_2024", "M2", "nope")

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	parsed, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, parsed.Campers, 1)
	assert.Equal(t, "42", parsed.Campers[0].Name)
	assert.True(t, parsed.Campers[0].Skipping)
	assert.True(t, parsed.Campers[0].HasTicket)
	assert.False(t, parsed.Campers[0].PaidDues)
}

func TestReadSkipsShortRows(t *testing.T) {
	f := excelize.NewFile()
	f.NewSheet("Items_2024")
	f.SetSheetRow("Items_2024", "A1", &[]any{"ID", "Name"})
	f.SetSheetRow("Items_2024", "A2", &[]any{1}) // name column missing entirely

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	parsed, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, parsed.Items, 1)
	assert.Empty(t, parsed.Items[0].Name)
}

func TestReadRejectsGarbage(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("not a workbook")))
	assert.Error(t, err)
}
