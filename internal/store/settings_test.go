package store

import (
	"context"
	"testing"

	"github.com/capricallctx/campcrap/internal/db"
)

func TestGetJWTSecret_GeneratesAndPersists(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// First call should generate a secret.
	secret1, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if len(secret1) != 64 { // 32 bytes = 64 hex chars
		t.Fatalf("expected 64 hex chars, got %d", len(secret1))
	}

	// Second call should return the same secret.
	secret2, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if secret1 != secret2 {
		t.Fatalf("expected same secret, got %q and %q", secret1, secret2)
	}
}

func TestCurrentYearSetting(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	year, err := GetCurrentYear(ctx, database, "2025")
	if err != nil {
		t.Fatal(err)
	}
	if year != "2025" {
		t.Errorf("expected fallback year, got %q", year)
	}

	if err := SetCurrentYear(ctx, database, "2026"); err != nil {
		t.Fatal(err)
	}
	year, err = GetCurrentYear(ctx, database, "2025")
	if err != nil {
		t.Fatal(err)
	}
	if year != "2026" {
		t.Errorf("expected stored year, got %q", year)
	}
}
