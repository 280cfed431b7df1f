package model

// Location is a named place within the camp for a given year.
type Location struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Year        string `json:"year"`
}

// Default storage location, ensured to exist for every year. Items without
// an explicit spot land here.
const (
	CampStorageName        = "Camp Storage"
	CampStorageDescription = "Central storage area for camp items"
)
