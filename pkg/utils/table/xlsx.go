package table

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const outputSheet = "Sheet1"

// decodeXLSX reads the first worksheet. Numeric and boolean cells keep their
// type; everything else is a string.
func decodeXLSX(data []byte) (*Table, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	header := rows[0]
	records := make([][]any, 0, len(rows)-1)
	for r, raw := range rows[1:] {
		if len(raw) > len(header) {
			// Cells to the right of the header are unnamed columns.
			for len(header) < len(raw) {
				header = append(header, "")
			}
		}
		row := make([]any, len(raw))
		for c, val := range raw {
			if val == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			typ, err := f.GetCellType(sheet, cell)
			if err != nil {
				return nil, fmt.Errorf("cell %s: %w", cell, err)
			}
			row[c] = typedValue(typ, val)
		}
		records = append(records, row)
	}
	return NewTable(header, records)
}

func typedValue(typ excelize.CellType, raw string) any {
	switch typ {
	case excelize.CellTypeBool:
		return raw == "1" || raw == "TRUE" || raw == "true"
	case excelize.CellTypeUnset, excelize.CellTypeNumber, excelize.CellTypeDate, excelize.CellTypeFormula:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n
		}
	}
	return raw
}

func encodeXLSX(t *Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for c, col := range t.Columns {
		if err := setCell(f, c, 1, col.Name); err != nil {
			return nil, err
		}
		for r, v := range col.Values {
			if v == nil {
				continue
			}
			if err := setCell(f, c, r+2, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(outputSheet, cell, v); err != nil {
		return fmt.Errorf("set cell %s: %w", cell, err)
	}
	return nil
}
