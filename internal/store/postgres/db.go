package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open opens a PostgreSQL database using the pgx stdlib driver.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// Migrate runs idempotent DDL migrations for the chat schema on PostgreSQL.
func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id              TEXT         PRIMARY KEY,
			email           VARCHAR(100) UNIQUE NOT NULL,
			full_name       VARCHAR(100) NOT NULL,
			bio             TEXT         NOT NULL DEFAULT '',
			profile_pic_url TEXT         NOT NULL DEFAULT '',
			hashed_password VARCHAR(255) NOT NULL,
			created_at      TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS messages (
			id          TEXT        PRIMARY KEY,
			sender_id   TEXT        NOT NULL REFERENCES users(id),
			receiver_id TEXT        NOT NULL REFERENCES users(id),
			text        TEXT        NOT NULL DEFAULT '',
			image_url   TEXT        NOT NULL DEFAULT '',
			seen        BOOLEAN     NOT NULL DEFAULT FALSE,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_pair ON messages(sender_id, receiver_id)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_receiver_seen ON messages(receiver_id, seen)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_created_at ON messages(created_at)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return nil
}
