package apply

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jkoelman/file-dater-go/pkg/stamp"
)

func TestExecute_SetsModificationTime(t *testing.T) {
	tmp := t.TempDir()
	path := writeFileWithMTime(t, tmp, "2020-01-01 notes.txt", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

	date := time.Date(2023, 4, 15, 12, 0, 0, 0, time.UTC)
	ops := []Operation{{Path: path, Change: stamp.Change{CreatedAt: date, ModifiedAt: date}}}

	results := Execute(ops, Options{})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if !results[0].Success {
		t.Fatalf("expected success, got %v", results[0].Error)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.ModTime().Equal(date) {
		t.Fatalf("mtime = %v, want %v", info.ModTime(), date)
	}
}

func TestExecute_PreservesMtimeWhenUnplanned(t *testing.T) {
	tmp := t.TempDir()
	mtime := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	path := writeFileWithMTime(t, tmp, "2023-04-15 notes.txt", mtime)

	date := time.Date(2023, 4, 15, 12, 0, 0, 0, time.UTC)
	ops := []Operation{{Path: path, Change: stamp.Change{CreatedAt: date}}}

	results := Execute(ops, Options{})
	if !results[0].Success {
		t.Fatalf("expected success, got %v", results[0].Error)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.ModTime().Equal(mtime) {
		t.Fatalf("mtime = %v, want preserved %v", info.ModTime(), mtime)
	}
}

func TestExecute_DryRunTouchesNothing(t *testing.T) {
	tmp := t.TempDir()
	mtime := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	path := writeFileWithMTime(t, tmp, "2023-04-15 notes.txt", mtime)

	date := time.Date(2023, 4, 15, 12, 0, 0, 0, time.UTC)
	ops := []Operation{{Path: path, Change: stamp.Change{CreatedAt: date, ModifiedAt: date}}}

	results := Execute(ops, Options{DryRun: true})
	if !results[0].Success {
		t.Fatalf("expected success, got %v", results[0].Error)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.ModTime().Equal(mtime) {
		t.Fatalf("dry run changed mtime to %v", info.ModTime())
	}
}

func TestExecute_MissingFileFailsAndContinues(t *testing.T) {
	tmp := t.TempDir()
	path := writeFileWithMTime(t, tmp, "2020-01-01 a.txt", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

	date := time.Date(2023, 4, 15, 12, 0, 0, 0, time.UTC)
	change := stamp.Change{CreatedAt: date, ModifiedAt: date}
	ops := []Operation{
		{Path: filepath.Join(tmp, "missing.txt"), Change: change},
		{Path: path, Change: change},
	}

	results := Execute(ops, Options{})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Success {
		t.Fatalf("expected failure for missing file")
	}
	if !results[1].Success {
		t.Fatalf("expected remaining operation to run, got %v", results[1].Error)
	}
}

func TestExecute_DirectoryFails(t *testing.T) {
	tmp := t.TempDir()

	date := time.Date(2023, 4, 15, 12, 0, 0, 0, time.UTC)
	results := Execute([]Operation{{Path: tmp, Change: stamp.Change{CreatedAt: date}}}, Options{})

	if results[0].Success {
		t.Fatalf("expected failure for directory target")
	}
	if !errors.Is(results[0].Error, ErrIsDirectory) {
		t.Fatalf("expected ErrIsDirectory, got %v", results[0].Error)
	}
}

func TestClamp(t *testing.T) {
	in := time.Date(2023, 4, 15, 12, 0, 0, 0, time.UTC)
	if got := clamp(in); !got.Equal(in) {
		t.Fatalf("in-range time was changed: %v", got)
	}

	early := time.Date(1000, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := clamp(early); !got.Equal(time.Unix(0, math.MinInt64)) {
		t.Fatalf("expected clamp to minimum, got %v", got)
	}

	late := time.Date(3000, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := clamp(late); !got.Equal(time.Unix(0, math.MaxInt64)) {
		t.Fatalf("expected clamp to maximum, got %v", got)
	}
}

func writeFileWithMTime(t *testing.T, dir string, name string, mtime time.Time) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(name), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	return path
}
