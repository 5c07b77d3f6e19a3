package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

const createStateTableSQL = `
CREATE TABLE IF NOT EXISTS session_state (
	key TEXT PRIMARY KEY,
	value TEXT,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// CreateInMemoryDB creates an in-memory SQLite database for testing. The pool
// is limited to one connection so every query sees the same database.
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// CreateTestStateDB creates an in-memory state database with a stored
// selection and a two-message conversation
func CreateTestStateDB(t *testing.T) *sql.DB {
	t.Helper()
	db := CreateInMemoryDB(t)

	if _, err := db.Exec(createStateTableSQL); err != nil {
		t.Fatalf("Failed to create session_state table: %v", err)
	}

	InsertState(t, db, "selected_products_v1", `["1","LRP-CICA","999"]`)
	InsertState(t, db, "chat_history_v1",
		`[{"role":"user","content":"Is this lotion fragrance free?"},{"role":"assistant","content":"Yes, it is fragrance free."}]`)

	return db
}

// InsertState inserts a state row
func InsertState(t *testing.T, db *sql.DB, key, value string) {
	t.Helper()
	_, err := db.Exec("INSERT OR REPLACE INTO session_state (key, value) VALUES (?, ?)", key, value)
	if err != nil {
		t.Fatalf("Failed to insert state %s: %v", key, err)
	}
}
