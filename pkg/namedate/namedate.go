package namedate

import (
	"regexp"
	"strconv"
	"time"
)

// Years outside this closed interval are treated as implausible: a leading
// four-digit number far from the present is almost always a serial number,
// not a date.
const (
	MinYear = 1900
	MaxYear = 2200
)

// Resolved dates carry a fixed noon time-of-day so that downstream timezone
// conversions cannot shift them across a day boundary.
const noonHour = 12

// rule pairs an anchored shape pattern with its resolver. The first rule
// whose pattern matches decides the interpretation; if its resolver rejects,
// the whole extraction is rejected.
type rule struct {
	pattern *regexp.Regexp
	resolve func(m []string, loc *time.Location) (time.Time, bool)
}

// Ordered from most to least specific so the longest shape wins when several
// would match the same leading digits. Separated shapes appear once per
// separator; mixing separators within one shape is not a structural match
// and falls through to the looser shapes below.
var rules = []rule{
	{regexp.MustCompile(`^(\d{4})-(\d{4})`), resolveYearRange},
	{regexp.MustCompile(`^(\d{4})_(\d{4})`), resolveYearRange},
	{regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`), resolveFullDate},
	{regexp.MustCompile(`^(\d{4})_(\d{2})_(\d{2})`), resolveFullDate},
	{regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})`), resolveEightDigits},
	{regexp.MustCompile(`^(\d{4})-(\d{2})`), resolveYearMonth},
	{regexp.MustCompile(`^(\d{4})_(\d{2})`), resolveYearMonth},
	{regexp.MustCompile(`^(\d{4})(\d{2})`), resolveYearMonth},
}

// Parse extracts the date encoded at the start of filename.
//
// Only the prefix is examined; a date embedded later in the name does not
// count. Characters after the matched prefix never invalidate the match.
// Resolved dates are at noon in loc (time.Local when loc is nil).
//
// The second return value is false when no shape matches or the matched
// digits do not form a plausible calendar date.
func Parse(filename string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}

	for _, r := range rules {
		m := r.pattern.FindStringSubmatch(filename)
		if m == nil {
			continue
		}
		return r.resolve(m, loc)
	}

	return time.Time{}, false
}

// A year range resolves to the last day of the second year.
func resolveYearRange(m []string, loc *time.Location) (time.Time, bool) {
	return yearRangeEnd(num(m[1]), num(m[2]), loc)
}

func resolveFullDate(m []string, loc *time.Location) (time.Time, bool) {
	y := num(m[1])
	if !yearInBound(y) {
		return time.Time{}, false
	}
	return makeDate(y, time.Month(num(m[2])), num(m[3]), loc)
}

// Eight bare digits are read as YYYYMMDD first. Only when that is not a
// valid calendar date are the digits reinterpreted as two concatenated
// four-digit years.
func resolveEightDigits(m []string, loc *time.Location) (time.Time, bool) {
	y := num(m[1])
	if yearInBound(y) {
		if t, ok := makeDate(y, time.Month(num(m[2])), num(m[3]), loc); ok {
			return t, true
		}
	}
	return yearRangeEnd(y, num(m[2]+m[3]), loc)
}

// A year and month resolve to the last day of that month.
func resolveYearMonth(m []string, loc *time.Location) (time.Time, bool) {
	y := num(m[1])
	mo := num(m[2])
	if !yearInBound(y) || mo < 1 || mo > 12 {
		return time.Time{}, false
	}

	// Day 0 of the following month is the last day of this one; the
	// calendar library owns the leap-year arithmetic.
	return time.Date(y, time.Month(mo)+1, 0, noonHour, 0, 0, 0, loc), true
}

func yearRangeEnd(y1, y2 int, loc *time.Location) (time.Time, bool) {
	if !yearInBound(y1) || !yearInBound(y2) {
		return time.Time{}, false
	}
	return time.Date(y2, time.December, 31, noonHour, 0, 0, 0, loc), true
}

// makeDate builds a noon timestamp and verifies the components survive
// time.Date's normalization; a mismatch means the combination was not a real
// calendar date (Feb 30, month 13, day 0).
func makeDate(y int, mo time.Month, d int, loc *time.Location) (time.Time, bool) {
	t := time.Date(y, mo, d, noonHour, 0, 0, 0, loc)
	if t.Year() != y || t.Month() != mo || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

func yearInBound(y int) bool {
	return y >= MinYear && y <= MaxYear
}

// num converts a matched digit group. Groups are all-digit by construction,
// so conversion cannot fail.
func num(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
