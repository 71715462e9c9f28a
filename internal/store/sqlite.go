package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// DocumentKey is the kv row holding the document, shared with the web client's storage key.
const DocumentKey = "memdb:v1"

// SQLiteBackend keeps the document as one row of a key/value table.
type SQLiteBackend struct {
	db *sqlx.DB
}

func OpenSQLite(dsn string) (*SQLiteBackend, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	// One connection: keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping sqlite")
	}
	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteBackend{db: db}, nil
}

func ensureSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS kv(
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT
);`)
	return errors.Wrap(err, "ensure kv schema")
}

func (b *SQLiteBackend) DB() *sqlx.DB { return b.db }

func (b *SQLiteBackend) Load(ctx context.Context) ([]byte, error) {
	var value string
	err := b.db.GetContext(ctx, &value, `SELECT value FROM kv WHERE key = ?`, DocumentKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoDocument
		}
		return nil, errors.Wrap(err, "select document")
	}
	return []byte(value), nil
}

func (b *SQLiteBackend) Save(ctx context.Context, data []byte) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO kv(key, value, updated_at)
		VALUES(?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, DocumentKey, string(data), time.Now().UTC().Format(time.RFC3339))
	return errors.Wrap(err, "upsert document")
}

func (b *SQLiteBackend) Close() error { return b.db.Close() }
