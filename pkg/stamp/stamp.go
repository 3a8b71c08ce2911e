// Package stamp decides which timestamp attributes to write for a file
// once a date has been extracted from its name.
package stamp

import "time"

// Change is the set of timestamp attributes to write for one file.
//
// CreatedAt is always set. A zero ModifiedAt means the file's existing
// modification time is preserved.
type Change struct {
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// Plan decides the timestamps to write given the date extracted from the
// filename and the file's current modification time (zero when unknown).
//
// The creation time always becomes date: the filename is authoritative for
// when the content logically belongs. The modification time only becomes
// date when no current mtime is known or date is strictly later; an existing
// newer edit is never pushed backward in time.
func Plan(date time.Time, modTime time.Time) Change {
	c := Change{CreatedAt: date}
	if modTime.IsZero() || date.After(modTime) {
		c.ModifiedAt = date
	}
	return c
}
