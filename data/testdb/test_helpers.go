package testdb

import (
	"context"
	"os"
	"testing"

	"github.com/Pjt727/roster/data"
)

// SetupTestDb resets the database in TEST_DB_CONN and returns a store on it.
// Tests are skipped when no test database is configured
func SetupTestDb(t *testing.T) *data.Store {
	t.Helper()
	testDb := os.Getenv("TEST_DB_CONN")
	if testDb == "" {
		t.Skip("TEST_DB_CONN is not set")
	}
	if err := data.ResetSchema(testDb); err != nil {
		t.Fatalf("could not reset test database: %v", err)
	}
	store, err := data.Initialize(context.Background(), testDb)
	if err != nil {
		t.Fatalf("could not open test database: %v", err)
	}
	t.Cleanup(store.Close)
	return store
}
