//go:build !windows

package apply

import "time"

// The birth time is not writable through portable syscalls on this
// platform; the closest observable effect is the mtime written by Execute.
func setCreationTime(path string, t time.Time) error {
	return nil
}
