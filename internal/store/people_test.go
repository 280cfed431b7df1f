package store

import (
	"context"
	"testing"

	"github.com/capricallctx/campcrap/internal/db"
	"github.com/capricallctx/campcrap/internal/model"
)

func TestCreateAndGetPerson(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	p, err := CreatePerson(ctx, database, model.Person{
		Name:  "Alice",
		Email: "alice@example.com",
		Year:  "2025",
	})
	if err != nil {
		t.Fatalf("CreatePerson: %v", err)
	}
	if p.Name != "Alice" {
		t.Errorf("expected name 'Alice', got %q", p.Name)
	}
	if p.IsInfrastructure {
		t.Error("expected regular person, got infrastructure")
	}

	got, err := GetPerson(ctx, database, p.ID)
	if err != nil {
		t.Fatalf("GetPerson: %v", err)
	}
	if got == nil || got.Email != "alice@example.com" {
		t.Errorf("unexpected person from GetPerson: %+v", got)
	}
}

func TestCreatePersonRequiresName(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreatePerson(ctx, database, model.Person{Year: "2025"}); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := CreatePerson(ctx, database, model.Person{Name: "Bob"}); err == nil {
		t.Error("expected error for empty year")
	}
}

func TestGetPersonMissing(t *testing.T) {
	database := db.NewTestDB(t)

	p, err := GetPerson(context.Background(), database, 42)
	if err != nil {
		t.Fatalf("GetPerson: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil for missing person, got %+v", p)
	}
}

func TestListPeopleFiltersInfrastructure(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreatePerson(ctx, database, model.Person{Name: "Zoe", Year: "2025"})
	CreatePerson(ctx, database, model.Person{Name: "Alice", Year: "2025"})
	CreatePerson(ctx, database, model.Person{Name: "Other Year", Year: "2024"})
	if _, err := EnsureInfrastructurePerson(ctx, database, "2025"); err != nil {
		t.Fatalf("EnsureInfrastructurePerson: %v", err)
	}

	people, err := ListPeople(ctx, database, "2025", false)
	if err != nil {
		t.Fatalf("ListPeople: %v", err)
	}
	if len(people) != 2 {
		t.Fatalf("expected 2 people without infrastructure, got %d", len(people))
	}
	// Ordered by name ascending.
	if people[0].Name != "Alice" || people[1].Name != "Zoe" {
		t.Errorf("unexpected order: %q, %q", people[0].Name, people[1].Name)
	}

	all, err := ListPeople(ctx, database, "2025", true)
	if err != nil {
		t.Fatalf("ListPeople: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 people with infrastructure, got %d", len(all))
	}
}

func TestUpdatePersonPartial(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	p, _ := CreatePerson(ctx, database, model.Person{
		Name:  "Alice",
		Email: "alice@example.com",
		Notes: "vegetarian",
		Year:  "2025",
	})

	// Only supplied fields change; an explicit empty string clears the field.
	email := ""
	ticket := true
	err := UpdatePerson(ctx, database, p.ID, model.PersonUpdate{
		Email:     &email,
		HasTicket: &ticket,
	})
	if err != nil {
		t.Fatalf("UpdatePerson: %v", err)
	}

	got, _ := GetPerson(ctx, database, p.ID)
	if got.Email != "" {
		t.Errorf("expected cleared email, got %q", got.Email)
	}
	if !got.HasTicket {
		t.Error("expected has_ticket set")
	}
	if got.Notes != "vegetarian" {
		t.Errorf("expected notes untouched, got %q", got.Notes)
	}

	empty := ""
	if err := UpdatePerson(ctx, database, p.ID, model.PersonUpdate{Name: &empty}); err == nil {
		t.Error("expected error for empty name update")
	}
}

func TestEnsureInfrastructurePersonIdempotent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, err := EnsureInfrastructurePerson(ctx, database, "2025")
	if err != nil {
		t.Fatalf("EnsureInfrastructurePerson: %v", err)
	}

	for i := 0; i < 5; i++ {
		id, err := EnsureInfrastructurePerson(ctx, database, "2025")
		if err != nil {
			t.Fatalf("EnsureInfrastructurePerson: %v", err)
		}
		if id != first {
			t.Errorf("expected id %d, got %d", first, id)
		}
	}

	all, _ := ListPeople(ctx, database, "2025", true)
	if len(all) != 1 {
		t.Errorf("expected exactly 1 row after repeated ensure, got %d", len(all))
	}

	inf, err := GetInfrastructurePerson(ctx, database, "2025")
	if err != nil {
		t.Fatalf("GetInfrastructurePerson: %v", err)
	}
	if inf == nil || inf.Name != model.InfrastructureName {
		t.Errorf("unexpected infrastructure person: %+v", inf)
	}

	// Scoped per year: a different year gets its own record.
	other, err := EnsureInfrastructurePerson(ctx, database, "2026")
	if err != nil {
		t.Fatalf("EnsureInfrastructurePerson: %v", err)
	}
	if other == first {
		t.Error("expected a separate infrastructure person for 2026")
	}
}

func TestSetPersonSkipping(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	p, _ := CreatePerson(ctx, database, model.Person{Name: "Alice", Year: "2025"})
	if err := SetPersonSkipping(ctx, database, p.ID, true); err != nil {
		t.Fatalf("SetPersonSkipping: %v", err)
	}

	got, _ := GetPerson(ctx, database, p.ID)
	if !got.Skipping {
		t.Error("expected skipping set")
	}

	// Skipping people stay in listings; the flag only marks them.
	people, _ := ListPeople(ctx, database, "2025", false)
	if len(people) != 1 {
		t.Errorf("expected skipping person still listed, got %d people", len(people))
	}
}
