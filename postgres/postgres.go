// Package postgres provides the PostgreSQL-based record store.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// DefaultPingTimeout bounds the connection check in Open.
const DefaultPingTimeout = 5 * time.Second

// DB represents a PostgreSQL database connection.
type DB struct {
	db  *sqlx.DB
	dsn string
}

// NewDB creates a new DB instance for the given data source name.
func NewDB(dsn string) *DB {
	return &DB{dsn: dsn}
}

// Open connects to the database and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sqlx.Open("postgres", db.dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Rows are written one at a time; a single reused connection is enough.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), DefaultPingTimeout)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	db.db = conn

	if _, err := conn.Exec(Schema); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// Schema creates the notices table and its indexes.
const Schema = `
	CREATE TABLE IF NOT EXISTS notices (
		id BIGSERIAL PRIMARY KEY,
		entry_type TEXT NOT NULL CHECK (entry_type IN ('recall', 'alert', 'press_release')),
		date_recall_issued DATE,
		date_issued DATE,
		product_name TEXT,
		product_type TEXT,
		manufacturer TEXT,
		recalling_firm TEXT,
		batch_numbers TEXT,
		manufacturing_date TEXT,
		expiry_date TEXT,
		reason_for_recall TEXT,
		source_url TEXT,
		pdf_path TEXT NOT NULL,
		alert_title TEXT,
		alert_pdf_filename TEXT,
		press_release_title TEXT,
		press_release_date DATE,
		pdf_press_release_link_public_link TEXT,
		all_text TEXT,
		text_hash TEXT NOT NULL DEFAULT '',
		run_id TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_notices_entry_type ON notices(entry_type);
	CREATE INDEX IF NOT EXISTS idx_notices_date_issued ON notices(date_issued);
	CREATE INDEX IF NOT EXISTS idx_notices_date_recall_issued ON notices(date_recall_issued);
	CREATE INDEX IF NOT EXISTS idx_notices_created_at ON notices(created_at);
`
