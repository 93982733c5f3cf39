// Package extract reads the two source workbooks into ordered raw rows
// and normalizes them into typed records. Only an unreadable or entirely
// empty container is an error; every malformed cell downstream coerces to
// a default instead.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"appraisal_etl/coerce"
	"appraisal_etl/schema"
)

// ErrEmptyWorkbook marks a workbook that opened but holds no rows at all,
// leaving nothing to even locate a header in. Distinct from a sheet with
// a header and zero data rows, which is valid and yields zero records.
var ErrEmptyWorkbook = errors.New("workbook contains no rows")

// Row maps physical column headers to raw cells for one data row.
type Row map[string]coerce.Cell

// Sheet is one loaded extract: resolved headers plus data rows in
// original order.
type Sheet struct {
	Path    string
	Headers []string
	Rows    []Row
}

// LoadSheet reads the first sheet of the workbook at path. When anchor is
// non-empty the header row is auto-detected within the first rows by its
// presence; otherwise the visible first row is the header. Blank rows are
// skipped.
func LoadSheet(path, anchor string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	name := f.GetSheetName(0)
	if name == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyWorkbook)
	}
	raw, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", path, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyWorkbook)
	}

	headerIdx := 0
	if anchor != "" {
		headerIdx = schema.HeaderRow(raw, anchor)
	}
	headers := make([]string, len(raw[headerIdx]))
	for i, h := range raw[headerIdx] {
		headers[i] = strings.TrimSpace(h)
	}

	sheet := &Sheet{Path: path, Headers: headers}
	for _, cells := range raw[headerIdx+1:] {
		if blankRow(cells) {
			continue
		}
		row := make(Row, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(cells) {
				row[h] = coerce.FromRaw(cells[i])
			} else {
				row[h] = coerce.Absent()
			}
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// cell returns the raw cell for a resolved header, treating an unresolved
// column (empty header name) as structurally absent.
func (r Row) cell(header string) coerce.Cell {
	if header == "" {
		return coerce.Absent()
	}
	if c, ok := r[header]; ok {
		return c
	}
	return coerce.Absent()
}
