// Package scan discovers candidate files under a directory tree.
package scan

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type Options struct {
	// MaxDepth bounds recursion: 0 means no recursion, -1 means unlimited.
	MaxDepth int

	// Extensions restricts results to the given extensions (leading dot
	// optional, case-insensitive). Empty means every file is a candidate.
	Extensions []string
}

func DefaultOptions() Options {
	return Options{MaxDepth: -1}
}

// Record describes one discovered file.
type Record struct {
	Path          string    `json:"path"`
	FileSizeBytes int64     `json:"file_size_bytes"`
	ModTime       time.Time `json:"mod_time"`
}

// Scan walks root and returns matching files sorted by path. Paths are
// relative to root, slash-separated.
func Scan(fsys fs.FS, root string, opts Options) ([]Record, error) {
	if opts.MaxDepth < -1 {
		return nil, fs.ErrInvalid
	}

	exts := normalizeExts(opts.Extensions)

	var records []Record

	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if opts.MaxDepth >= 0 && depth(rel) > opts.MaxDepth {
				return fs.SkipDir
			}
			return nil
		}

		if opts.MaxDepth >= 0 && depth(rel) > opts.MaxDepth {
			return nil
		}

		if len(exts) > 0 {
			ext := strings.ToLower(filepath.Ext(rel))
			if !exts[ext] {
				return nil
			}
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			return infoErr
		}

		records = append(records, Record{
			Path:          filepath.ToSlash(rel),
			FileSizeBytes: info.Size(),
			ModTime:       info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Path < records[j].Path
	})
	return records, nil
}

// Paths returns just the paths of records, in order.
func Paths(records []Record) []string {
	paths := make([]string, 0, len(records))
	for _, r := range records {
		paths = append(paths, r.Path)
	}
	return paths
}

func normalizeExts(exts []string) map[string]bool {
	m := make(map[string]bool, len(exts))
	for _, ext := range exts {
		e := strings.TrimSpace(strings.ToLower(ext))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		m[e] = true
	}
	return m
}

func depth(rel string) int {
	rel = filepath.Clean(rel)
	if rel == "." {
		return 0
	}
	return strings.Count(filepath.ToSlash(rel), "/")
}
