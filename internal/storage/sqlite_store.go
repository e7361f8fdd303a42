package storage

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/shoplist/internal/model"
)

// SQLiteStore keeps the snapshot in an items table ordered by position.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	return &SQLiteStore{db: db}, nil
}

// OpenSQLite opens (creating if needed) the database at path and applies the
// embedded migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	store, err := NewSQLiteStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	store.path = path
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load() ([]model.Item, error) {
	rows, err := s.db.Query(`SELECT item, quantity, added_date FROM items ORDER BY position ASC`)
	if err != nil {
		return []model.Item{}, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	out := make([]model.Item, 0)
	for rows.Next() {
		item, scanErr := scanItem(rows)
		if scanErr != nil {
			return []model.Item{}, scanErr
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return []model.Item{}, err
	}
	return out, nil
}

func (s *SQLiteStore) Save(items []model.Item) (bool, error) {
	if len(items) == 0 {
		return false, nil
	}
	if err := checkItems(items); err != nil {
		return false, err
	}
	if err := s.replace(items); err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLiteStore) Clear() error {
	return s.replace(nil)
}

func (s *SQLiteStore) replace(items []model.Item) error {
	if s.path != "" {
		if err := ensureDir(s.path); err != nil {
			return err
		}
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM items`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete items: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO items (position, item, quantity, added_date) VALUES (?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for i, item := range items {
		if _, err := stmt.Exec(i, item.Name, item.Quantity, item.AddedDate()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert item %q: %w", item.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (model.Item, error) {
	var out model.Item
	var added string
	if err := s.Scan(&out.Name, &out.Quantity, &added); err != nil {
		return model.Item{}, err
	}
	addedAt, err := model.ParseTimestamp(added)
	if err != nil {
		return model.Item{}, fmt.Errorf("%w: added_date %q: %v", ErrMalformedSnapshot, added, err)
	}
	out.AddedAt = addedAt
	if err := out.Validate(); err != nil {
		return model.Item{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	return out, nil
}
