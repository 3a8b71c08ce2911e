// Package apply writes planned timestamp changes to the filesystem.
package apply

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/jkoelman/file-dater-go/pkg/stamp"
)

var (
	// ErrIsDirectory is returned when an operation targets a directory.
	ErrIsDirectory = errors.New("target is a directory")
)

// Operation pairs a file path with the timestamp change to write.
type Operation struct {
	Path   string
	Change stamp.Change
}

// Result contains the outcome of writing one operation.
type Result struct {
	Operation Operation
	Success   bool
	Error     error
}

// Options configures the write behavior.
type Options struct {
	// DryRun reports every operation as successful without touching the
	// filesystem.
	DryRun bool
}

// os.Chtimes has undefined behavior for times the platform cannot
// represent; clamp to the range covered by int64 nanoseconds.
var (
	minSysTime = time.Unix(0, math.MinInt64)
	maxSysTime = time.Unix(0, math.MaxInt64)
)

// Execute writes the planned timestamp changes.
//
// Failures are per file: an operation that cannot be written is marked
// failed and the remaining operations still run. Nothing is retried.
func Execute(operations []Operation, opts Options) []Result {
	results := make([]Result, 0, len(operations))

	for _, op := range operations {
		result := Result{Operation: op, Success: false}

		if opts.DryRun {
			result.Success = true
			results = append(results, result)
			continue
		}

		if err := write(op.Path, op.Change); err != nil {
			result.Error = err
			results = append(results, result)
			continue
		}

		result.Success = true
		results = append(results, result)
	}

	return results
}

func write(path string, c stamp.Change) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}
	if info.IsDir() {
		return ErrIsDirectory
	}

	// os.Chtimes rewrites atime and mtime together; carry the current
	// mtime forward when the plan leaves it alone.
	mtime := info.ModTime()
	if !c.ModifiedAt.IsZero() {
		mtime = clamp(c.ModifiedAt)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		return fmt.Errorf("chtimes: %w", err)
	}

	if err := setCreationTime(path, clamp(c.CreatedAt)); err != nil {
		return fmt.Errorf("set creation time: %w", err)
	}

	return nil
}

func clamp(t time.Time) time.Time {
	if t.Before(minSysTime) {
		return minSysTime
	}
	if t.After(maxSysTime) {
		return maxSysTime
	}
	return t
}
