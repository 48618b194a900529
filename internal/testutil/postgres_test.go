//go:build integration
// +build integration

package testutil

import (
	"context"
	"testing"
)

// TestSetupTestDB_Integration validates the test infrastructure itself:
// the container starts, migrations run, and the turns table is queryable.
//
// Run with: go test -tags=integration ./internal/testutil -v
func TestSetupTestDB_Integration(t *testing.T) {
	dbContainer, cleanup := SetupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	if err := dbContainer.Pool.Ping(ctx); err != nil {
		t.Fatalf("Pool.Ping() unexpected error: %v", err)
	}

	var count int
	err := dbContainer.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM turns").Scan(&count)
	if err != nil {
		t.Fatalf("querying turns table: %v", err)
	}
	if count != 0 {
		t.Errorf("fresh database has %d turns, want 0", count)
	}

	// The migration version table must exist and be clean.
	var dirty bool
	err = dbContainer.Pool.QueryRow(ctx, "SELECT dirty FROM schema_migrations").Scan(&dirty)
	if err != nil {
		t.Fatalf("querying schema_migrations: %v", err)
	}
	if dirty {
		t.Error("schema_migrations reports dirty state after SetupTestDB")
	}
}
