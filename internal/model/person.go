package model

// Person is a camper for a given year, or the synthetic infrastructure
// record that owns camp-wide items.
type Person struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email,omitempty"`
	RealName         string `json:"real_name,omitempty"`
	EntryDate        string `json:"entry_date,omitempty"`
	ExitDate         string `json:"exit_date,omitempty"`
	CampName         string `json:"camp_name,omitempty"`
	Notes            string `json:"notes,omitempty"`
	Year             string `json:"year"`
	Skipping         bool   `json:"skipping"`
	IsInfrastructure bool   `json:"is_infrastructure"`
	YearsAttended    string `json:"years_attended,omitempty"`
	HasTicket        bool   `json:"has_ticket"`
	PaidDues         bool   `json:"paid_dues"`
	PhotoPath        string `json:"photo_path,omitempty"`
}

// Infrastructure record defaults, one per year.
const (
	InfrastructureName  = "Camp Infrastructure"
	InfrastructureNotes = "Items that belong to the camp overall"
)

// PersonUpdate carries a partial update. Nil fields are left unchanged.
type PersonUpdate struct {
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty"`
	RealName      *string `json:"real_name,omitempty"`
	EntryDate     *string `json:"entry_date,omitempty"`
	ExitDate      *string `json:"exit_date,omitempty"`
	CampName      *string `json:"camp_name,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	Skipping      *bool   `json:"skipping,omitempty"`
	YearsAttended *string `json:"years_attended,omitempty"`
	HasTicket     *bool   `json:"has_ticket,omitempty"`
	PaidDues      *bool   `json:"paid_dues,omitempty"`
	PhotoPath     *string `json:"photo_path,omitempty"`
}
