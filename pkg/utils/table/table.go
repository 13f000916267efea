// Package table holds the in-memory spreadsheet model used while a single
// upload is processed, plus the CSV and XLSX codecs that load and save it.
package table

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyFile is returned when the uploaded bytes contain no header row.
	ErrEmptyFile = errors.New("uploaded file is empty")
	// ErrUnsupportedFormat is returned for any format other than csv or xlsx.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Format identifies one of the supported spreadsheet encodings.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a file extension (without the dot, any case) to a Format.
func ParseFormat(ext string) (Format, error) {
	switch Format(strings.ToLower(ext)) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// MIMEType returns the Content-Type used when sending a file of this format.
func (f Format) MIMEType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		return "text/csv"
	}
	return "application/octet-stream"
}

// Column is a named, ordered run of cell values. Values are string, float64,
// bool or nil (an empty cell).
type Column struct {
	Name   string
	Values []any
}

// Table is an ordered set of columns whose values are aligned by row index.
type Table struct {
	Columns []Column
}

// NewTable builds a table from a header and row-major records. Short records
// are padded with nil; records longer than the header are rejected.
func NewTable(header []string, records [][]any) (*Table, error) {
	names := normalizeHeader(header)
	t := &Table{Columns: make([]Column, len(names))}
	for i, name := range names {
		t.Columns[i] = Column{Name: name, Values: make([]any, len(records))}
	}
	for r, rec := range records {
		if len(rec) > len(names) {
			return nil, fmt.Errorf("row %d: expected %d fields, saw %d", r+2, len(names), len(rec))
		}
		for c, v := range rec {
			t.Columns[c].Values[r] = v
		}
	}
	return t, nil
}

// RowCount returns the number of data rows (header excluded).
func (t *Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// FindColumn returns the first column whose name equals name, ignoring case.
func (t *Table) FindColumn(name string) (*Column, bool) {
	for i := range t.Columns {
		if strings.EqualFold(t.Columns[i].Name, name) {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// AppendColumn adds a column after the existing ones. The column must have
// exactly one value per row.
func (t *Table) AppendColumn(name string, values []any) error {
	if len(t.Columns) > 0 && len(values) != t.RowCount() {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), t.RowCount())
	}
	t.Columns = append(t.Columns, Column{Name: name, Values: values})
	return nil
}

// SetColumn replaces the values of the column named exactly name, or
// appends a new column when there is none.
func (t *Table) SetColumn(name string, values []any) error {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			if len(values) != t.RowCount() {
				return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), t.RowCount())
			}
			t.Columns[i].Values = values
			return nil
		}
	}
	return t.AppendColumn(name, values)
}

// Header returns the column names in order.
func (t *Table) Header() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Row returns the values of row r in column order.
func (t *Table) Row(r int) []any {
	row := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		row[i] = c.Values[r]
	}
	return row
}

// Decode parses raw bytes in the given format.
func Decode(data []byte, format Format) (*Table, error) {
	switch format {
	case FormatCSV:
		return decodeCSV(data)
	case FormatXLSX:
		return decodeXLSX(data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Encode serialises the table in the given format.
func Encode(t *Table, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return encodeCSV(t)
	case FormatXLSX:
		return encodeXLSX(t)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// normalizeHeader names blank columns "Unnamed: <index>" and suffixes
// repeated names with ".<n>" so every column is addressable. Other names are
// kept byte for byte.
func normalizeHeader(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := h
		if strings.TrimSpace(h) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := seen[name]; dup {
			base := name
			for {
				n++
				name = fmt.Sprintf("%s.%d", base, n)
				if _, taken := seen[name]; !taken {
					break
				}
			}
			seen[base] = n
		}
		seen[name] = 0
		names[i] = name
	}
	return names
}
