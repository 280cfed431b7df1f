package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/capricallctx/campcrap/internal/model"
)

// CreatePerson creates a new person. The name is the only required field;
// no uniqueness check is performed.
func CreatePerson(ctx context.Context, db *sql.DB, p model.Person) (*model.Person, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("person name required")
	}
	if p.Year == "" {
		return nil, fmt.Errorf("person year required")
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO people (name, email, real_name, entry_date, exit_date, camp_name,
		                     notes, year, skipping, is_infrastructure, years_attended,
		                     has_ticket, paid_dues, photo_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Email, p.RealName, p.EntryDate, p.ExitDate, p.CampName,
		p.Notes, p.Year, p.Skipping, p.IsInfrastructure, p.YearsAttended,
		p.HasTicket, p.PaidDues, nullable(p.PhotoPath),
	)
	if err != nil {
		return nil, fmt.Errorf("creating person: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting person id: %w", err)
	}

	return GetPerson(ctx, db, id)
}

const personColumns = `id, name, email, real_name, entry_date, exit_date, camp_name,
	notes, year, skipping, is_infrastructure, years_attended, has_ticket, paid_dues, photo_path`

func scanPerson(row interface{ Scan(...any) error }) (*model.Person, error) {
	p := &model.Person{}
	var photoPath sql.NullString
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.RealName, &p.EntryDate, &p.ExitDate,
		&p.CampName, &p.Notes, &p.Year, &p.Skipping, &p.IsInfrastructure,
		&p.YearsAttended, &p.HasTicket, &p.PaidDues, &photoPath)
	if err != nil {
		return nil, err
	}
	p.PhotoPath = photoPath.String
	return p, nil
}

// GetPerson returns a person by ID.
func GetPerson(ctx context.Context, db *sql.DB, id int64) (*model.Person, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+personColumns+` FROM people WHERE id = ?`, id,
	)
	p, err := scanPerson(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting person: %w", err)
	}
	return p, nil
}

// ListPeople returns people for a year ordered by name. When
// includeInfrastructure is false the synthetic infrastructure record is
// filtered out, which is what every people-facing screen wants.
func ListPeople(ctx context.Context, db *sql.DB, year string, includeInfrastructure bool) ([]model.Person, error) {
	var rows *sql.Rows
	var err error

	if includeInfrastructure {
		rows, err = db.QueryContext(ctx,
			`SELECT `+personColumns+` FROM people WHERE year = ? ORDER BY name ASC`, year,
		)
	} else {
		rows, err = db.QueryContext(ctx,
			`SELECT `+personColumns+` FROM people
			 WHERE year = ? AND is_infrastructure = 0 ORDER BY name ASC`, year,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	defer rows.Close()

	var people []model.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning person: %w", err)
		}
		people = append(people, *p)
	}
	return people, rows.Err()
}

// UpdatePerson applies a partial update. Nil fields in upd are left unchanged,
// so callers can distinguish "not supplied" from "supplied empty".
func UpdatePerson(ctx context.Context, db *sql.DB, id int64, upd model.PersonUpdate) error {
	var sets []string
	var args []any

	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if upd.Name != nil {
		if *upd.Name == "" {
			return fmt.Errorf("person name cannot be empty")
		}
		set("name", *upd.Name)
	}
	if upd.Email != nil {
		set("email", *upd.Email)
	}
	if upd.RealName != nil {
		set("real_name", *upd.RealName)
	}
	if upd.EntryDate != nil {
		set("entry_date", *upd.EntryDate)
	}
	if upd.ExitDate != nil {
		set("exit_date", *upd.ExitDate)
	}
	if upd.CampName != nil {
		set("camp_name", *upd.CampName)
	}
	if upd.Notes != nil {
		set("notes", *upd.Notes)
	}
	if upd.Skipping != nil {
		set("skipping", *upd.Skipping)
	}
	if upd.YearsAttended != nil {
		set("years_attended", *upd.YearsAttended)
	}
	if upd.HasTicket != nil {
		set("has_ticket", *upd.HasTicket)
	}
	if upd.PaidDues != nil {
		set("paid_dues", *upd.PaidDues)
	}
	if upd.PhotoPath != nil {
		set("photo_path", nullable(*upd.PhotoPath))
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	_, err := db.ExecContext(ctx,
		`UPDATE people SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...,
	)
	if err != nil {
		return fmt.Errorf("updating person: %w", err)
	}
	return nil
}

// SetPersonSkipping flags a person as sitting out the current year without
// removing them.
func SetPersonSkipping(ctx context.Context, db *sql.DB, id int64, skipping bool) error {
	_, err := db.ExecContext(ctx,
		`UPDATE people SET skipping = ? WHERE id = ?`, skipping, id,
	)
	if err != nil {
		return fmt.Errorf("setting person skipping: %w", err)
	}
	return nil
}

// EnsureInfrastructurePerson returns the id of the year's infrastructure
// record, creating it on first access. Safe to call repeatedly.
func EnsureInfrastructurePerson(ctx context.Context, db *sql.DB, year string) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx,
		`SELECT id FROM people WHERE year = ? AND is_infrastructure = 1 LIMIT 1`, year,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("looking up infrastructure person: %w", err)
	}

	p, err := CreatePerson(ctx, db, model.Person{
		Name:             model.InfrastructureName,
		Notes:            model.InfrastructureNotes,
		Year:             year,
		IsInfrastructure: true,
	})
	if err != nil {
		return 0, fmt.Errorf("creating infrastructure person: %w", err)
	}
	return p.ID, nil
}

// GetInfrastructurePerson returns the year's infrastructure record, or nil if
// it has not been ensured yet.
func GetInfrastructurePerson(ctx context.Context, db *sql.DB, year string) (*model.Person, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+personColumns+` FROM people
		 WHERE year = ? AND is_infrastructure = 1 LIMIT 1`, year,
	)
	p, err := scanPerson(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting infrastructure person: %w", err)
	}
	return p, nil
}

// HasPeopleForYear reports whether any non-infrastructure people exist for a year.
func HasPeopleForYear(ctx context.Context, db *sql.DB, year string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM people WHERE year = ? AND is_infrastructure = 0`, year,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking people for year: %w", err)
	}
	return count > 0, nil
}

// nullable maps an empty string to NULL for optional TEXT columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
