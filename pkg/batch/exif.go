package batch

import (
	"io"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// DefaultMetadata returns the EXIF-based metadata extractor.
func DefaultMetadata() MetadataExtractor {
	return exifExtractor{}
}

type exifExtractor struct{}

func (e exifExtractor) CreatedAt(path string, r io.Reader) (time.Time, bool, error) {
	x, err := exif.Decode(r)
	if err != nil {
		// Not a JPEG/TIFF, or no EXIF block. Either way: not found.
		return time.Time{}, false, nil
	}

	// Prefer DateTimeOriginal, then DateTimeDigitized, then DateTime.
	tags := []exif.FieldName{exif.DateTimeOriginal, exif.DateTimeDigitized, exif.DateTime}
	for _, tag := range tags {
		if tm, ok := exifTimeFromTag(x, tag); ok {
			return tm, true, nil
		}
	}

	if t, err := x.DateTime(); err == nil {
		return t, true, nil
	}

	return time.Time{}, false, nil
}

func exifTimeFromTag(x *exif.Exif, tag exif.FieldName) (time.Time, bool) {
	f, err := x.Get(tag)
	if err != nil {
		return time.Time{}, false
	}

	s, err := f.StringVal()
	if err != nil {
		return time.Time{}, false
	}

	// EXIF DateTime format: "2006:01:02 15:04:05", usually without a
	// timezone; interpret as Local.
	tm, err := time.ParseInLocation("2006:01:02 15:04:05", s, time.Local)
	if err != nil {
		return time.Time{}, false
	}

	return tm, true
}
