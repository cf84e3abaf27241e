package r011

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// R011 exports render reception dates inconsistently between branches:
// dd/mm/yyyy text, ISO text, or a raw Excel serial when the cell lost its
// format. dd/mm layouts must come before mm/dd to avoid misparsing the
// Venezuelan day-first convention.
var dateLayouts = []string{
	"02/01/2006", "2/1/2006", "02/01/06", "2/1/06",
	"02-01-2006", "2-1-2006",
	"2006-01-02", "2006/01/02",
	"2006-01-02 15:04:05", "2006-01-02T15:04:05", time.RFC3339,
	"02/01/2006 15:04:05", "02/01/2006 15:04",
	"02-Jan-2006", "02-Jan-06", "2-Jan-2006",
	"01/02/2006", "1/2/2006",
}

// parseDate coerces a cell to a calendar date, trying the known layouts and
// falling back to Excel serial numbers.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date string")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if t, err := parseExcelSerialDate(s); err == nil {
		return t, nil
	}
	return time.Time{}, errors.New("could not parse date: " + s)
}

// parseExcelSerialDate converts an Excel serial date (possibly with a
// fractional day) into a time.Time. Excel counts from 1899-12-30 and
// includes the fake 1900-02-29 day.
func parseExcelSerialDate(s string) (time.Time, error) {
	f, err := strconv.ParseFloat(cleanAmount(s), 64)
	if err != nil {
		return time.Time{}, err
	}
	if f <= 0 {
		return time.Time{}, errors.New("non-positive excel serial")
	}
	days := int(f)
	frac := f - float64(days)
	// The 1899-12-30 base already absorbs the nonexistent 1900-02-29 for
	// serials past it; earlier serials sit one day short of it.
	if days <= 59 {
		days++
	}
	base := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
	d := base.AddDate(0, 0, days)
	d = d.Add(time.Duration(frac * float64(24*time.Hour)))
	return d, nil
}

// dateOnly truncates a time to its calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysSince returns whole days elapsed from d to today. Both sides are
// truncated to calendar dates first, so partial days never round the count.
func daysSince(d time.Time) int {
	return int(dateOnly(time.Now()).Sub(dateOnly(d)).Hours() / 24)
}
