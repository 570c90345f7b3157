package sqlite

import (
	"context"
	"fmt"
)

// The schema is applied as idempotent DDL on every open rather than
// through a versioned migration chain: every statement is safe to rerun
// against an existing database file.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT,
		location TEXT,
		start_datetime TEXT NOT NULL,
		end_datetime TEXT NOT NULL,
		is_all_day INTEGER NOT NULL DEFAULT 0,
		category TEXT,
		color TEXT,
		recurrence_rule TEXT,
		recurrence_exceptions TEXT,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_start ON events (start_datetime)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		color TEXT NOT NULL,
		icon TEXT,
		is_system INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

func (cp *ConnectionPool) applySchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := cp.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
