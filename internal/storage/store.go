package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandeepkv93/shoplist/internal/model"
)

var (
	ErrMalformedSnapshot = errors.New("storage: malformed snapshot")
	ErrUnknownBackend    = errors.New("storage: unknown backend")
)

// SnapshotName is the base name shared by every backend's backing file or key.
const SnapshotName = "shopping_list"

// Store persists the full item collection. Every write replaces the previous
// snapshot. Errors returned by Load and Save are warnings: Load always returns
// a usable (possibly empty) slice alongside them.
type Store interface {
	Load() ([]model.Item, error)
	// Save is a no-op returning false for an empty slice; use Clear to
	// persist an empty list.
	Save(items []model.Item) (bool, error)
	Clear() error
	Close() error
}

type Backend string

const (
	BackendCSV    Backend = "csv"
	BackendSQLite Backend = "sqlite"
	BackendDiskv  Backend = "diskv"
)

func (b Backend) IsValid() bool {
	switch b {
	case BackendCSV, BackendSQLite, BackendDiskv:
		return true
	default:
		return false
	}
}

func ParseBackend(raw string) (Backend, error) {
	b := Backend(strings.ToLower(strings.TrimSpace(raw)))
	if b == "" {
		return BackendCSV, nil
	}
	if !b.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, raw)
	}
	return b, nil
}

// Open returns the Store for backend rooted at dataDir.
func Open(backend Backend, dataDir string) (Store, error) {
	switch backend {
	case BackendCSV, "":
		return NewCSVStore(filepath.Join(dataDir, SnapshotName+".csv")), nil
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dataDir, SnapshotName+".db"))
	case BackendDiskv:
		return NewDiskvStore(filepath.Join(dataDir, "kv")), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// checkItems rejects a snapshot that Load would not be able to read back.
func checkItems(items []model.Item) error {
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("storage: item %d: %w", i+1, err)
		}
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return nil
}
