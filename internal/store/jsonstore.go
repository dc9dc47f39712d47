package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/idilsaglam/pagepal/internal/model"
)

// JSON-backed storage. One human-readable file per key, portable.
// No locking; a single screen is the only writer at a time.

type JSONStore struct {
	dir string
	log *zap.Logger
}

func NewJSONStore(dir string, log *zap.Logger) *JSONStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &JSONStore{dir: dir, log: log}
}

func (s *JSONStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *JSONStore) Load(_ context.Context, key string) ([]model.Item, error) {
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Item{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var items []model.Item
	if err := json.Unmarshal(b, &items); err != nil {
		// A corrupt payload degrades to an empty list rather than
		// wedging the screen behind an error.
		s.log.Warn("discarding unparsable list", zap.String("key", key), zap.Error(err))
		return []model.Item{}, nil
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

func (s *JSONStore) Save(_ context.Context, key string, items []model.Item) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(s.path(key), b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (s *JSONStore) Close() error { return nil }
