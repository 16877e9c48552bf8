package db

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Connect initializes the database connection and runs migrations.
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

// Migrations are idempotent and applied in order on every start.
var Migrations = []string{
	`CREATE TABLE IF NOT EXISTS guestbook (
            id BIGSERIAL PRIMARY KEY,
            nickname TEXT NOT NULL,
            content TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
	`CREATE INDEX IF NOT EXISTS idx_guestbook_created_at ON guestbook(created_at);`,
}

// RunMigrations applies Migrations.
func RunMigrations(db *sqlx.DB) error {
	for _, m := range Migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}
	slog.Info("database migrations applied", "count", len(Migrations))
	return nil
}
