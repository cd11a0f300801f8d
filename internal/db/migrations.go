package db

import (
	"database/sql"
	"fmt"
)

// Custom profiles only; built-in profiles live in code and never touch the
// database. Rules are stored as a JSON array.
const baseSchema = `
CREATE TABLE IF NOT EXISTS profiles (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL,
  rules TEXT NOT NULL DEFAULT '[]',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`

// Migrate brings the schema up to date. Statements are idempotent so the
// runner needs no version bookkeeping yet.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("migrate base schema: %w", err)
	}
	return nil
}
