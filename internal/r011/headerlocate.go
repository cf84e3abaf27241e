package r011

import (
	"log"
	"strings"
)

const (
	// headerScanLimit bounds how deep into the sheet the locator looks for
	// the header row. R011 exports carry at most a few banner/title rows,
	// but branch offices sometimes prepend filter summaries.
	headerScanLimit = 100

	// headerMatchThreshold is the minimum number of expected column names a
	// row must contain to be accepted as the header.
	headerMatchThreshold = 5
)

// LocateHeaderRow scans the leading rows of a raw sheet for the row that
// contains the canonical R011 column names and returns its offset, or -1
// when no row reaches the match threshold. Ties keep the earliest row.
// The locator never panics past its boundary; any failure degrades to -1
// and the caller treats the first row as the header.
func LocateHeaderRow(rows [][]string, expected []string) (idx int) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[R011] header locator recovered: %v", r)
			idx = -1
		}
	}()

	if len(expected) == 0 {
		expected = R011Columns
	}
	want := make(map[string]bool, len(expected)*2)
	for _, name := range expected {
		want[normalizeHeaderCell(name)] = true
		want[stripAllWhitespace(normalizeHeaderCell(name))] = true
	}

	best, bestCount := -1, 0
	for i := 0; i < len(rows) && i < headerScanLimit; i++ {
		if allEmptyRow(rows[i]) {
			continue
		}
		count := 0
		for _, cell := range rows[i] {
			norm := normalizeHeaderCell(cell)
			if norm == "" {
				continue
			}
			if want[norm] || want[stripAllWhitespace(norm)] {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = i, count
		}
	}
	if bestCount < headerMatchThreshold {
		return -1
	}
	return best
}

func normalizeHeaderCell(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func stripAllWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ' ':
			return -1
		}
		return r
	}, s)
}
