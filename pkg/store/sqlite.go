package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteFile = "eduhub.db"

const createSlotsTable = `CREATE TABLE IF NOT EXISTS slots (
	name  TEXT PRIMARY KEY,
	value BLOB NOT NULL
)`

// NewSQLite creates a Persistence backed by a sqlite database file inside
// basePath.
func NewSQLite(basePath string) (Persistence, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	db, err := sql.Open("sqlite3", filepath.Join(basePath, sqliteFile))
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(createSlotsTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create slots table: %w", err)
	}
	return &sqlitePersistence{db: db, basePath: basePath}, nil
}

type sqlitePersistence struct {
	db       *sql.DB
	basePath string
}

func (p *sqlitePersistence) Get(slot Slot) ([]byte, error) {
	var val []byte
	err := p.db.QueryRow(`SELECT value FROM slots WHERE name = ?`, string(slot)).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", slot, err)
	}
	return val, nil
}

func (p *sqlitePersistence) Set(slot Slot, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := p.db.Exec(
		`INSERT INTO slots (name, value) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value`,
		string(slot), value)
	if err != nil {
		return fmt.Errorf("store: write %s: %w", slot, err)
	}
	return nil
}

func (p *sqlitePersistence) Has(slot Slot) bool {
	var n int
	if err := p.db.QueryRow(`SELECT COUNT(1) FROM slots WHERE name = ?`, string(slot)).Scan(&n); err != nil {
		return false
	}
	return n > 0
}

// Watch reports any change to the database directory as an invalidation;
// the changed slot cannot be derived from sqlite file writes.
func (p *sqlitePersistence) Watch(ctx context.Context) (<-chan Event, error) {
	return watchDir(ctx, p.basePath, func(string) Slot { return "" })
}
