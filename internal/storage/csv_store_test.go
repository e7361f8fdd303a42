package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCSVStoreWritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "shopping_list.csv")
	store := NewCSVStore(path)

	if _, err := store.Save(sampleItems(t)[:1]); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	want := "item,quantity,added_date\nMilk,2,2026-02-09 12:00:00\n"
	if string(raw) != want {
		t.Fatalf("unexpected file contents:\n%q\nwant:\n%q", raw, want)
	}
}

func TestCSVStoreClearKeepsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "shopping_list.csv")
	store := NewCSVStore(path)
	if _, err := store.Save(sampleItems(t)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(raw) != "item,quantity,added_date\n" {
		t.Fatalf("expected header only, got %q", raw)
	}

	fresh := NewCSVStore(path)
	items, err := fresh.Load()
	if err != nil {
		t.Fatalf("load after clear: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no items, got %#v", items)
	}
}

func TestCSVStoreMissingFileIsEmpty(t *testing.T) {
	store := NewCSVStore(filepath.Join(t.TempDir(), "absent.csv"))
	items, err := store.Load()
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", items)
	}
}

func TestCSVStoreMalformedFileIsWarning(t *testing.T) {
	cases := map[string]string{
		"empty":       "",
		"bad header":  "name,count\nMilk,2\n",
		"bad qty":     "item,quantity,added_date\nMilk,two,2026-02-09 12:00:00\n",
		"zero qty":    "item,quantity,added_date\nMilk,0,2026-02-09 12:00:00\n",
		"bad date":    "item,quantity,added_date\nMilk,2,yesterday\n",
		"blank name":  "item,quantity,added_date\n  ,2,2026-02-09 12:00:00\n",
		"bad quoting": "item,quantity,added_date\n\"Milk,2,2026-02-09 12:00:00\n",
	}
	for name, contents := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "shopping_list.csv")
			if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
				t.Fatalf("write fixture: %v", err)
			}
			items, err := NewCSVStore(path).Load()
			if !errors.Is(err, ErrMalformedSnapshot) {
				t.Fatalf("expected ErrMalformedSnapshot, got %v", err)
			}
			if items == nil || len(items) != 0 {
				t.Fatalf("expected empty slice on parse failure, got %#v", items)
			}
		})
	}
}

func TestReadTableReordersColumnsAndIgnoresExtras(t *testing.T) {
	in := "added_date,notes,item,quantity\n2026-02-09 12:00:00,organic,Apples,6\n"
	items, err := ReadTable(strings.NewReader(in))
	if err != nil {
		t.Fatalf("read table: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Apples" || items[0].Quantity != 6 {
		t.Fatalf("unexpected items: %#v", items)
	}
}

func TestReadTableTrimsNames(t *testing.T) {
	in := "item,quantity,added_date\n  Milk ,2,2026-02-09 12:00:00\n"
	items, err := ReadTable(strings.NewReader(in))
	if err != nil {
		t.Fatalf("read table: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Milk" || !items[0].SameName("milk") {
		t.Fatalf("expected trimmed name, got %#v", items)
	}
}

func TestWriteTableReadTableRoundTrip(t *testing.T) {
	want := sampleItems(t)
	var buf bytes.Buffer
	if err := WriteTable(&buf, want); err != nil {
		t.Fatalf("write table: %v", err)
	}
	got, err := ReadTable(&buf)
	if err != nil {
		t.Fatalf("read table: %v", err)
	}
	assertSameItems(t, got, want)
}

func TestCSVStoreWriteFailureIsReported(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	// parent "directory" is a regular file, so MkdirAll must fail
	store := NewCSVStore(filepath.Join(blocker, "shopping_list.csv"))
	saved, err := store.Save(sampleItems(t))
	if err == nil || saved {
		t.Fatalf("expected write failure, got saved=%v err=%v", saved, err)
	}
	if err := store.Clear(); err == nil {
		t.Fatal("expected clear failure")
	}
}
