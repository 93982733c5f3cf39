package coerce

import (
	"strconv"
	"strings"
	"time"
)

// Kind discriminates the raw cell union.
type Kind int

const (
	KindAbsent Kind = iota
	KindNumber
	KindText
	KindDate
)

// Cell is a raw spreadsheet value before coercion. Source extracts mix
// numeric date serials, formatted strings, and plain numbers in the same
// column, so every cell carries its original kind until a coercion
// resolves it. The union must not leak past this package.
type Cell struct {
	kind Kind
	num  float64
	text string
	date time.Time
}

func Absent() Cell            { return Cell{kind: KindAbsent} }
func Number(v float64) Cell   { return Cell{kind: KindNumber, num: v} }
func Text(s string) Cell      { return Cell{kind: KindText, text: s} }
func Date(t time.Time) Cell   { return Cell{kind: KindDate, date: t} }

// FromRaw converts a raw string cell into the union. Numeric-looking
// strings become numbers so that date serials survive the round trip
// through the sheet reader, which yields strings for every cell.
func FromRaw(s string) Cell {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Absent()
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Number(v)
	}
	return Text(s)
}

func (c Cell) Kind() Kind { return c.kind }

func (c Cell) IsEmpty() bool {
	return c.kind == KindAbsent || (c.kind == KindText && strings.TrimSpace(c.text) == "")
}

// Trim renders the cell as a trimmed string, the uniform treatment for
// free-text fields.
func (c Cell) Trim() string {
	switch c.kind {
	case KindNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	case KindText:
		return strings.TrimSpace(c.text)
	case KindDate:
		return c.date.Format("2006-01-02")
	default:
		return ""
	}
}
