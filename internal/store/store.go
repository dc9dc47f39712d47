package store

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/idilsaglam/pagepal/internal/model"
)

// Store persists one ordered item list per key. Load returns an empty
// list when the key is absent or its payload does not parse; a crash
// between an in-memory update and Save loses that update silently,
// which is acceptable for a local single-user app.
type Store interface {
	Load(ctx context.Context, key string) ([]model.Item, error)
	Save(ctx context.Context, key string, items []model.Item) error
	Close() error
}

// Backend names for Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

const sqliteFileName = "pagepal.db"

// Open builds the configured store backend rooted at dir.
func Open(backend, dir string, log *zap.Logger) (Store, error) {
	switch backend {
	case "", BackendJSON:
		return NewJSONStore(dir, log), nil
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, sqliteFileName), log)
	}
	return nil, fmt.Errorf("unknown store backend %q", backend)
}
