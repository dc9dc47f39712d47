package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/idilsaglam/pagepal/internal/model"
)

// SQLite-backed storage: a single db file holding the JSON-encoded
// list per shelf key. Same contract as the JSON backend.

type SQLiteStore struct {
	db  *sql.DB
	log *zap.Logger
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS shelves (
	key   TEXT PRIMARY KEY,
	items TEXT NOT NULL
);`

func OpenSQLite(path string, log *zap.Logger) (*SQLiteStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db, log: log}, nil
}

func (s *SQLiteStore) Load(ctx context.Context, key string) ([]model.Item, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT items FROM shelves WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return []model.Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select shelf: %w", err)
	}
	var items []model.Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.Warn("discarding unparsable list", zap.String("key", key), zap.Error(err))
		return []model.Item{}, nil
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

func (s *SQLiteStore) Save(ctx context.Context, key string, items []model.Item) error {
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO shelves (key, items) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET items = excluded.items`,
		key, string(b))
	if err != nil {
		return fmt.Errorf("upsert shelf: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
