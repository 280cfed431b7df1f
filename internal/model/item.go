package model

import "time"

// Item is a physical object owned by one person and placed at one location.
// CamperName and LocationName are join results for display, not stored columns.
type Item struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	CamperID      int64      `json:"camper_id"`
	LocationID    int64      `json:"location_id"`
	PhotoPath     string     `json:"photo_path,omitempty"`
	Year          string     `json:"year"`
	CreatedDate   time.Time  `json:"created_date"`
	RemovalStatus string     `json:"removal_status"`
	NFCUID        string     `json:"nfc_uid,omitempty"`
	LastSighting  *time.Time `json:"last_sighting,omitempty"`
	CamperName    string     `json:"camper_name,omitempty"`
	LocationName  string     `json:"location_name,omitempty"`
}

// Removal statuses. Transitions are unrestricted: any status can move to any
// other, including back to active.
const (
	StatusActive    = "active"
	StatusTrashed   = "trashed"
	StatusTakenHome = "taken_home"
	StatusDonated   = "donated"
)

// ValidStatus reports whether s is a known removal status.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusTrashed, StatusTakenHome, StatusDonated:
		return true
	}
	return false
}

// ItemUpdate carries a partial update. Nil fields are left unchanged.
type ItemUpdate struct {
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	CamperID      *int64  `json:"camper_id,omitempty"`
	LocationID    *int64  `json:"location_id,omitempty"`
	PhotoPath     *string `json:"photo_path,omitempty"`
	RemovalStatus *string `json:"removal_status,omitempty"`
	NFCUID        *string `json:"nfc_uid,omitempty"`
}
