// Package batch drives the per-file pipeline: stat, extract a date from the
// filename, and plan the timestamp change. Every file is processed
// independently; one file's rejection never affects another.
package batch

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/jkoelman/file-dater-go/pkg/namedate"
	"github.com/jkoelman/file-dater-go/pkg/stamp"
)

// ErrNoDate marks a file whose name encodes no recognizable date. It is an
// expected per-file outcome, not a run failure.
var ErrNoDate = errors.New("no date in filename")

// Source describes where an item's date came from.
type Source string

const (
	SourceFilename Source = "filename"
	SourceMetadata Source = "metadata"
)

// Item is the per-file outcome of a run.
type Item struct {
	Path   string
	Date   time.Time
	Source Source
	Change stamp.Change
	Err    error
}

// MetadataExtractor extracts an embedded creation timestamp from a file's
// content.
//
// Implementations return (t, true, nil) when a timestamp is found and
// (time.Time{}, false, nil) when none exists. Errors are treated as
// best-effort failures: the file is handled as if no timestamp was found.
type MetadataExtractor interface {
	CreatedAt(path string, r io.Reader) (time.Time, bool, error)
}

// Options configures Run.
type Options struct {
	// Location is used for dates parsed from filenames, which carry no
	// timezone. If nil, time.Local is used.
	Location *time.Location

	// Metadata optionally supplies an embedded-timestamp fallback for
	// files whose names encode no date. Nil disables the fallback; see
	// DefaultMetadata for the EXIF-based extractor.
	Metadata MetadataExtractor

	// Workers bounds concurrent file processing. Values below 1 mean
	// sequential.
	Workers int
}

// Run stats, extracts and plans each path independently.
//
// Items are returned in input order. Per-file failures land in the items
// themselves; the error return is reserved for cancellation.
func Run(ctx context.Context, fsys fs.FS, paths []string, opts Options) ([]Item, error) {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	// Each goroutine owns exactly one slot, so no further synchronization
	// is needed to collect results.
	items := make([]Item, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(workers))

	for i, path := range paths {
		i, path := i, path

		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			items[i] = processOne(fsys, path, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

func processOne(fsys fs.FS, path string, opts Options) Item {
	item := Item{Path: path}

	info, err := fs.Stat(fsys, path)
	if err != nil {
		item.Err = err
		return item
	}
	if info.IsDir() {
		item.Err = fs.ErrInvalid
		return item
	}

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	if date, ok := namedate.Parse(filepath.Base(path), loc); ok {
		item.Date = date
		item.Source = SourceFilename
	} else if date, ok := metadataDate(fsys, path, opts.Metadata); ok {
		item.Date = date
		item.Source = SourceMetadata
	} else {
		item.Err = ErrNoDate
		return item
	}

	item.Change = stamp.Plan(item.Date, info.ModTime())
	return item
}

func metadataDate(fsys fs.FS, path string, metadata MetadataExtractor) (time.Time, bool) {
	if metadata == nil {
		return time.Time{}, false
	}

	f, err := fsys.Open(path)
	if err != nil {
		return time.Time{}, false
	}
	defer f.Close()

	date, ok, err := metadata.CreatedAt(path, f)
	if err != nil || !ok {
		return time.Time{}, false
	}
	return date, true
}
