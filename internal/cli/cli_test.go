package cli

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/sandeepkv93/shoplist/internal/session"
)

func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SHOPLIST_DATA_DIR", "")
	t.Setenv("SHOPLIST_BACKEND", "")
	t.Setenv("SHOPLIST_NO_COLOR", "")
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	chdir(t, t.TempDir())
	return t.TempDir()
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := New()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, stderr, err := run(t, args...)
	if err != nil {
		t.Fatalf("shoplist %v failed: %v\nstderr: %s", args, err, stderr)
	}
	return out
}

func TestAddListAndStats(t *testing.T) {
	dir := isolate(t)
	if out := mustRun(t, "--data-dir", dir, "add", "milk", "2"); out != "Added 2 milk\n" {
		t.Fatalf("unexpected add output: %q", out)
	}
	mustRun(t, "--data-dir", dir, "add", "oat", "milk", "-q", "3")
	mustRun(t, "--data-dir", dir, "add", "Milk")

	out := mustRun(t, "--data-dir", dir, "ls")
	for _, want := range []string{"milk", "oat milk", "2 item(s), 6 in total"} {
		if !strings.Contains(out, want) {
			t.Fatalf("ls output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Milk") {
		t.Fatalf("merged item must keep its first spelling:\n%s", out)
	}

	out = mustRun(t, "--data-dir", dir, "stats")
	if !strings.Contains(out, "Total items:") || !strings.Contains(out, "6") {
		t.Fatalf("unexpected stats output:\n%s", out)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "shopping_list.csv"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(raw), "item,quantity,added_date\nmilk,3,") {
		t.Fatalf("unexpected file:\n%s", raw)
	}
}

func TestAddRejectsBadQuantity(t *testing.T) {
	dir := isolate(t)
	if _, _, err := run(t, "--data-dir", dir, "add", "milk", "0"); err == nil {
		t.Fatal("expected error for zero quantity")
	}
	if _, _, err := run(t, "--data-dir", dir, "add", "milk", "--quantity=0"); err == nil {
		t.Fatal("expected error for negative quantity flag")
	}
}

func TestRootPrintsListWhenNotTerminal(t *testing.T) {
	dir := isolate(t)
	out := mustRun(t, "--data-dir", dir)
	if !strings.Contains(out, "No items in your shopping list yet!") {
		t.Fatalf("expected empty list message, got %q", out)
	}
	mustRun(t, "--data-dir", dir, "add", "bread")
	out = mustRun(t, "--data-dir", dir)
	if !strings.Contains(out, "bread") {
		t.Fatalf("expected bread in output, got %q", out)
	}
}

func TestRemoveByNumber(t *testing.T) {
	dir := isolate(t)
	mustRun(t, "--data-dir", dir, "add", "milk")
	mustRun(t, "--data-dir", dir, "add", "eggs", "12")

	if _, _, err := run(t, "--data-dir", dir, "rm", "9"); err == nil {
		t.Fatal("expected error for out of range number")
	}
	if _, _, err := run(t, "--data-dir", dir, "rm", "zero"); err == nil {
		t.Fatal("expected error for non-numeric argument")
	}
	if out := mustRun(t, "--data-dir", dir, "rm", "1"); out != "Removed milk\n" {
		t.Fatalf("unexpected rm output: %q", out)
	}
	mustRun(t, "--data-dir", dir, "rm", "1")

	raw, err := os.ReadFile(filepath.Join(dir, "shopping_list.csv"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(raw) != "item,quantity,added_date\n" {
		t.Fatalf("expected header-only file after removing the last item, got %q", raw)
	}
}

func TestClearAndReset(t *testing.T) {
	dir := isolate(t)
	mustRun(t, "--data-dir", dir, "add", "milk")
	if out := mustRun(t, "--data-dir", dir, "clear"); !strings.Contains(out, "All items have been cleared") {
		t.Fatalf("unexpected clear output: %q", out)
	}

	mustRun(t, "--data-dir", dir, "add", "milk")
	_, _, err := run(t, "--data-dir", dir, "reset", "--password", "Shopping")
	if !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("expected wrong password error, got %v", err)
	}
	if out := mustRun(t, "--data-dir", dir, "ls"); !strings.Contains(out, "milk") {
		t.Fatalf("wrong password must keep the list:\n%s", out)
	}

	mustRun(t, "--data-dir", dir, "reset", "--password", "shopping")
	if out := mustRun(t, "--data-dir", dir, "ls"); !strings.Contains(out, "No items") {
		t.Fatalf("expected empty list after reset:\n%s", out)
	}
}

func TestExportFormats(t *testing.T) {
	dir := isolate(t)
	mustRun(t, "--data-dir", dir, "add", "milk", "2")

	if out := mustRun(t, "--data-dir", dir, "export"); !strings.HasPrefix(out, "item,quantity,added_date\nmilk,2,") {
		t.Fatalf("unexpected csv export: %q", out)
	}
	if out := mustRun(t, "--data-dir", dir, "export", "--format", "yaml"); !strings.Contains(out, "item: milk") || !strings.Contains(out, "total_quantity: 2") {
		t.Fatalf("unexpected yaml export:\n%s", out)
	}
	if out := mustRun(t, "--data-dir", dir, "export", "-f", "md"); !strings.Contains(out, "| 1 | milk | 2 |") {
		t.Fatalf("unexpected markdown export:\n%s", out)
	}
	if _, _, err := run(t, "--data-dir", dir, "export", "--format", "pdf"); err == nil {
		t.Fatal("expected error for unknown format")
	}

	target := filepath.Join(t.TempDir(), "list.md")
	mustRun(t, "--data-dir", dir, "export", "--format", "markdown", "-o", target)
	raw, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(raw), "# Shopping List") {
		t.Fatalf("unexpected export file:\n%s", raw)
	}
}

func TestAlternateBackends(t *testing.T) {
	for _, backend := range []string{"sqlite", "diskv"} {
		t.Run(backend, func(t *testing.T) {
			dir := isolate(t)
			mustRun(t, "--data-dir", dir, "--backend", backend, "add", "milk", "2")
			mustRun(t, "--data-dir", dir, "--backend", backend, "add", "eggs")
			out := mustRun(t, "--data-dir", dir, "--backend", backend, "ls")
			if !strings.Contains(out, "2 item(s), 3 in total") {
				t.Fatalf("unexpected %s listing:\n%s", backend, out)
			}
			if _, err := os.Stat(filepath.Join(dir, "shopping_list.csv")); !os.IsNotExist(err) {
				t.Fatalf("%s backend must not write the csv file", backend)
			}
		})
	}
}

func TestBackendFromEnv(t *testing.T) {
	dir := isolate(t)
	t.Setenv("SHOPLIST_BACKEND", "sqlite")
	mustRun(t, "--data-dir", dir, "add", "milk")
	if _, err := os.Stat(filepath.Join(dir, "shopping_list.db")); err != nil {
		t.Fatalf("expected sqlite database: %v", err)
	}
}

func TestUnknownBackend(t *testing.T) {
	dir := isolate(t)
	if _, _, err := run(t, "--data-dir", dir, "--backend", "postgres", "ls"); err == nil {
		t.Fatal("expected unknown backend error")
	}
}

func TestMalformedFileIsWarning(t *testing.T) {
	dir := isolate(t)
	body := "item,quantity,added_date\nmilk,lots,2026-02-09 12:00:00\n"
	if err := os.WriteFile(filepath.Join(dir, "shopping_list.csv"), []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, stderr, err := run(t, "--data-dir", dir, "ls")
	if err != nil {
		t.Fatalf("ls must not fail on a malformed file: %v", err)
	}
	if !strings.Contains(out, "No items") {
		t.Fatalf("expected empty list, got %q", out)
	}
	if !strings.Contains(stderr, "shoplist: warning:") {
		t.Fatalf("expected logged warning, got %q", stderr)
	}
}

func TestVersion(t *testing.T) {
	isolate(t)
	out := mustRun(t, "--backend", "nope", "version")
	if !strings.Contains(out, Version) {
		t.Fatalf("expected version in output, got %q", out)
	}
}

type failingCloser struct {
	bytes.Buffer
}

func (f *failingCloser) Close() error { return errors.New("disk full") }

func TestExportReportsCloseError(t *testing.T) {
	dir := isolate(t)
	mustRun(t, "--data-dir", dir, "add", "milk")

	orig := createExport
	t.Cleanup(func() { createExport = orig })
	sink := &failingCloser{}
	createExport = func(string) (io.WriteCloser, error) { return sink, nil }

	_, _, err := run(t, "--data-dir", dir, "export", "-o", filepath.Join(dir, "out.csv"))
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected close error, got %v", err)
	}
	if !strings.Contains(sink.String(), "milk") {
		t.Fatalf("expected export body before close, got %q", sink.String())
	}
}

func TestAddRejectsQuantityOverflow(t *testing.T) {
	dir := isolate(t)
	mustRun(t, "--data-dir", dir, "add", "milk", strconv.Itoa(math.MaxInt))

	_, _, err := run(t, "--data-dir", dir, "add", "Milk", "2")
	if !errors.Is(err, session.ErrQuantityTooLarge) {
		t.Fatalf("expected ErrQuantityTooLarge, got %v", err)
	}
	out, stderr, err := run(t, "--data-dir", dir, "ls")
	if err != nil || stderr != "" {
		t.Fatalf("list must still load: err=%v stderr=%q", err, stderr)
	}
	if !strings.Contains(out, strconv.Itoa(math.MaxInt)) {
		t.Fatalf("expected quantity unchanged:\n%s", out)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
