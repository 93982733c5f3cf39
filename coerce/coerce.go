// Package coerce converts raw spreadsheet cells into typed domain values.
// Every function tolerates the malformed input the source extracts are
// known to contain: failures coerce to null (dates, prices) or to a
// documented default (ratings), never to an error.
package coerce

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDatePattern = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})`)
	euDatePattern  = regexp.MustCompile(`^(\d{1,2})[./](\d{1,2})[./](\d{4})`)
	priceStripper  = regexp.MustCompile(`[^\d.,-]`)
)

// Excel serial day 0 maps to 1899-12-30, which absorbs the historical
// 1900 leap-year bug for every serial the extracts actually contain.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Serials outside this range are treated as plain numbers, not dates.
const (
	minSerial = 1
	maxSerial = 2958465 // 9999-12-31
)

// freeformLayouts approximates the loose date parsing the legacy importer
// relied on for stragglers that match neither ISO nor EU shapes.
var freeformLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

func formatYMD(y, m, d string) string {
	year, _ := strconv.Atoi(y)
	month, _ := strconv.Atoi(m)
	day, _ := strconv.Atoi(d)
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

func serialToDate(serial float64) (time.Time, bool) {
	if serial < minSerial || serial > maxSerial {
		return time.Time{}, false
	}
	return serialEpoch.AddDate(0, 0, int(serial)), true
}

// ParseDate normalizes a cell to a YYYY-MM-DD string. Accepted inputs, in
// trial order: Excel numeric serial, native date, ISO-prefixed string,
// day-first string with "." or "/" separators, then a small set of
// free-form layouts. Unparseable input reports ok=false.
func ParseDate(c Cell) (string, bool) {
	switch c.kind {
	case KindAbsent:
		return "", false
	case KindNumber:
		d, ok := serialToDate(c.num)
		if !ok {
			return "", false
		}
		return d.Format("2006-01-02"), true
	case KindDate:
		return c.date.Format("2006-01-02"), true
	}

	s := strings.TrimSpace(c.text)
	if s == "" {
		return "", false
	}
	if m := isoDatePattern.FindStringSubmatch(s); m != nil {
		return formatYMD(m[1], m[2], m[3]), true
	}
	if m := euDatePattern.FindStringSubmatch(s); m != nil {
		return formatYMD(m[3], m[2], m[1]), true
	}
	for _, layout := range freeformLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d.Format("2006-01-02"), true
		}
	}
	return "", false
}

// DefaultRating is the "used, visible wear" baseline assigned when no
// input shape yields a rating.
const DefaultRating = 5

func clampMonth(m int) int {
	if m < 1 {
		return 1
	}
	if m > 10 {
		return 10
	}
	return m
}

// ParseRating coerces a cell to a rating in [1,10]. Numbers in range are
// rounded; numbers out of range are reinterpreted as date serials and the
// month is used — the source data historically misused the rating column
// for dates, and this is the only way those rows survive. Date-like
// strings likewise contribute their month. Everything else falls back to
// a bare number in range, then to DefaultRating. Total: never fails.
func ParseRating(c Cell) int {
	switch c.kind {
	case KindAbsent:
		return DefaultRating
	case KindNumber:
		if c.num >= 1 && c.num <= 10 {
			return int(math.Round(c.num))
		}
		if d, ok := serialToDate(c.num); ok {
			return clampMonth(int(d.Month()))
		}
		return DefaultRating
	case KindDate:
		return clampMonth(int(c.date.Month()))
	}

	s := strings.TrimSpace(c.text)
	if s == "" {
		return DefaultRating
	}
	if m := isoDatePattern.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[2])
		return clampMonth(month)
	}
	if m := euDatePattern.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[2])
		return clampMonth(month)
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil && n >= 1 && n <= 10 {
		return int(math.Round(n))
	}
	return DefaultRating
}

// ParsePrice coerces a cell to a non-negative-or-null currency amount
// rounded to 2 decimals. Strings are stripped to digits, separators and
// sign; "," is treated as a decimal point. Unparseable or empty input
// reports ok=false.
func ParsePrice(c Cell) (float64, bool) {
	switch c.kind {
	case KindAbsent:
		return 0, false
	case KindNumber:
		return roundCents(c.num), true
	case KindDate:
		return 0, false
	}

	s := priceStripper.ReplaceAllString(c.text, "")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return roundCents(n), true
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
