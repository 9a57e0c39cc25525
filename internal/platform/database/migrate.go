package database

import (
	"context"
	"fmt"
	"log/slog"
)

// migrations are applied in order. Each statement must be idempotent.
var migrations = []struct {
	name string
	sql  string
}{
	{"quiz_events", `CREATE TABLE IF NOT EXISTS quiz_events (
		id         BIGSERIAL PRIMARY KEY,
		session_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		data       JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`},
	{"quiz_events_session_idx", `CREATE INDEX IF NOT EXISTS quiz_events_session_idx
		ON quiz_events (session_id, created_at)`},
	{"contact_messages", `CREATE TABLE IF NOT EXISTS contact_messages (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL,
		message    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`},
}

// Migrate creates the hub's tables if they do not exist.
func (db *DB) Migrate(ctx context.Context) error {
	for _, m := range migrations {
		if _, err := db.Pool.Exec(ctx, m.sql); err != nil {
			return fmt.Errorf("migration %s: %w", m.name, err)
		}
	}
	slog.Info("database migrated", "steps", len(migrations))
	return nil
}
