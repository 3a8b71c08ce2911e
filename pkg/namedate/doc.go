// Package namedate extracts a calendar date encoded at the start of a filename.
//
// Six shapes are recognized: a year range (2021-2022 or 2021_2022), a full
// date (2023-04-15 or 2023_04_15), eight bare digits (YYYYMMDD, falling back
// to a concatenated year range when the date reading is invalid), a year and
// month (2023-04 or 2023_04, resolved to the last day of that month), and six
// bare digits (YYYYMM). Anything else means the filename carries no date.
package namedate
