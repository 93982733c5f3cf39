// Package schema locates header rows and maps logical field names onto the
// physical column headers of a messy sheet. Header text drifts between
// exports (casing, suffixes, stray whitespace), so resolution runs in
// tiers instead of assuming fixed positions.
package schema

import "strings"

// MaxHeaderScanRows bounds the search for a drifting header row.
const MaxHeaderScanRows = 5

// Resolve picks the physical header for one logical field. Tiers, per
// candidate alias in the given order: exact match, case-insensitive
// match, case-insensitive containment. Within a tier the first matching
// header left-to-right wins. A miss reports ok=false and callers must
// read the field as empty, never as an error.
func Resolve(headers []string, aliases ...string) (string, bool) {
	for _, alias := range aliases {
		for _, h := range headers {
			if h == alias {
				return h, true
			}
		}
	}
	for _, alias := range aliases {
		for _, h := range headers {
			if strings.EqualFold(h, alias) {
				return h, true
			}
		}
	}
	for _, alias := range aliases {
		lower := strings.ToLower(alias)
		for _, h := range headers {
			if strings.Contains(strings.ToLower(h), lower) {
				return h, true
			}
		}
	}
	return "", false
}

// HeaderRow scans the first MaxHeaderScanRows rows for one containing the
// anchor column text and returns its index. Row 0 is assumed when the
// anchor never appears, matching sheets whose header sits on the visible
// first row.
func HeaderRow(rows [][]string, anchor string) int {
	limit := len(rows)
	if limit > MaxHeaderScanRows {
		limit = MaxHeaderScanRows
	}
	for i := 0; i < limit; i++ {
		for _, cell := range rows[i] {
			if strings.Contains(cell, anchor) {
				return i
			}
		}
	}
	return 0
}
