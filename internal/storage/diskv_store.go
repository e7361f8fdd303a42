package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"github.com/sandeepkv93/shoplist/internal/model"
)

// DiskvStore keeps the CSV-encoded snapshot under a single diskv key.
type DiskvStore struct {
	d        *diskv.Diskv
	basePath string
}

func NewDiskvStore(basePath string) *DiskvStore {
	return &DiskvStore{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			TempDir:      filepath.Join(basePath, ".tmp"),
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		basePath: basePath,
	}
}

func (s *DiskvStore) Load() ([]model.Item, error) {
	if !s.d.Has(SnapshotName) {
		return []model.Item{}, nil
	}
	raw, err := s.d.Read(SnapshotName)
	if err != nil {
		return []model.Item{}, fmt.Errorf("read %s/%s: %w", s.basePath, SnapshotName, err)
	}
	items, err := ReadTable(bytes.NewReader(raw))
	if err != nil {
		return []model.Item{}, fmt.Errorf("load %s/%s: %w", s.basePath, SnapshotName, err)
	}
	return items, nil
}

func (s *DiskvStore) Save(items []model.Item) (bool, error) {
	if len(items) == 0 {
		return false, nil
	}
	if err := checkItems(items); err != nil {
		return false, err
	}
	if err := s.write(items); err != nil {
		return false, err
	}
	return true, nil
}

func (s *DiskvStore) Clear() error {
	return s.write(nil)
}

func (s *DiskvStore) Close() error { return nil }

func (s *DiskvStore) write(items []model.Item) error {
	if err := os.MkdirAll(s.d.TempDir, 0o755); err != nil {
		return fmt.Errorf("create data dir %s: %w", s.basePath, err)
	}
	var buf bytes.Buffer
	if err := WriteTable(&buf, items); err != nil {
		return err
	}
	if err := s.d.Write(SnapshotName, buf.Bytes()); err != nil {
		return fmt.Errorf("write %s/%s: %w", s.basePath, SnapshotName, err)
	}
	return nil
}
