package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sandeepkv93/shoplist/internal/model"
)

const (
	columnItem     = "item"
	columnQuantity = "quantity"
	columnAdded    = "added_date"
)

var tableHeader = []string{columnItem, columnQuantity, columnAdded}

// WriteTable encodes items as a CSV table with the item,quantity,added_date
// header. A nil or empty slice produces the header row only.
func WriteTable(w io.Writer, items []model.Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tableHeader); err != nil {
		return err
	}
	for _, item := range items {
		row := []string{item.Name, strconv.Itoa(item.Quantity), item.AddedDate()}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadTable decodes a table written by WriteTable. Columns are located by
// header name; unknown columns are ignored.
func ReadTable(r io.Reader) ([]model.Item, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header row", ErrMalformedSnapshot)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, want := range tableHeader {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformedSnapshot, want)
		}
	}

	out := make([]model.Item, 0)
	for {
		rec, readErr := cr.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, readErr)
		}
		line, _ := cr.FieldPos(0)
		item, parseErr := parseRow(rec, cols)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedSnapshot, line, parseErr)
		}
		out = append(out, item)
	}
	return out, nil
}

func parseRow(rec []string, cols map[string]int) (model.Item, error) {
	field := func(name string) string {
		idx := cols[name]
		if idx >= len(rec) {
			return ""
		}
		return rec[idx]
	}
	qty, err := strconv.Atoi(strings.TrimSpace(field(columnQuantity)))
	if err != nil {
		return model.Item{}, fmt.Errorf("quantity: %w", err)
	}
	added, err := model.ParseTimestamp(field(columnAdded))
	if err != nil {
		return model.Item{}, fmt.Errorf("added_date: %w", err)
	}
	item := model.Item{Name: strings.TrimSpace(field(columnItem)), Quantity: qty, AddedAt: added}
	if err := item.Validate(); err != nil {
		return model.Item{}, err
	}
	return item, nil
}

// CSVStore keeps the snapshot in a single CSV file.
type CSVStore struct {
	path string
}

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

func (s *CSVStore) Path() string { return s.path }

func (s *CSVStore) Load() ([]model.Item, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Item{}, nil
		}
		return []model.Item{}, fmt.Errorf("open snapshot %s: %w", s.path, err)
	}
	defer f.Close()

	items, err := ReadTable(f)
	if err != nil {
		return []model.Item{}, fmt.Errorf("load %s: %w", s.path, err)
	}
	return items, nil
}

func (s *CSVStore) Save(items []model.Item) (bool, error) {
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

func (s *CSVStore) Clear() error {
	return s.write(nil)
}

func (s *CSVStore) Close() error { return nil }

func (s *CSVStore) write(items []model.Item) error {
	if err := ensureDir(s.path); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("write snapshot %s: %w", s.path, err)
	}
	if err := WriteTable(f, items); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write snapshot %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write snapshot %s: %w", s.path, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("write snapshot %s: %w", s.path, err)
	}
	return nil
}
