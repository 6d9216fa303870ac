package database

import (
	"strings"
	"testing"
)

func readSchema(t *testing.T) string {
	t.Helper()
	sql, err := migrationsFS.ReadFile("migrations/001_schema.sql")
	if err != nil {
		t.Fatalf("read embedded schema: %v", err)
	}
	return string(sql)
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("no embedded migrations")
	}
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".sql") {
			t.Errorf("unexpected file in migrations: %s", e.Name())
		}
	}
}

// Requests must outlive the events they target. A cascade here would delete
// a delete-request inside its own review transaction and would erase review
// history whenever an event is removed; dangling targets are rendered as
// placeholders instead.
func TestRequestHistorySurvivesEventDeletion(t *testing.T) {
	schema := readSchema(t)

	start := strings.Index(schema, "CREATE TABLE IF NOT EXISTS requests")
	if start < 0 {
		t.Fatal("requests table not found in schema")
	}
	requests := schema[start:]
	if end := strings.Index(requests, ";"); end > 0 {
		requests = requests[:end]
	}

	if !strings.Contains(requests, "event_id UUID REFERENCES events(id) ON DELETE SET NULL") {
		t.Errorf("requests.event_id must use ON DELETE SET NULL, got:\n%s", requests)
	}
	if strings.Contains(requests, "ON DELETE CASCADE") {
		t.Errorf("requests table must not cascade on any reference:\n%s", requests)
	}
}

func TestEventDescriptionDefaultsEmpty(t *testing.T) {
	schema := readSchema(t)
	if !strings.Contains(schema, "description TEXT NOT NULL DEFAULT ''") {
		t.Error("events.description should be a non-null text defaulting to empty")
	}
}
