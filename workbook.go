package gradebook

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook wraps an excelize file with the lookups the resize engine needs:
// style border detection, cell text and sheet extent.
// A Workbook is not safe for concurrent use.
type Workbook struct {
	file    *excelize.File
	borders map[int]bool // styleID → style draws at least one border
}

// NewWorkbook wraps an already opened excelize file.
func NewWorkbook(f *excelize.File) *Workbook {
	return &Workbook{
		file:    f,
		borders: make(map[int]bool),
	}
}

// OpenWorkbook parses xlsx bytes into a Workbook.
func OpenWorkbook(data []byte) (*Workbook, error) {
	if len(data) == 0 {
		return nil, ErrNoTemplate
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return NewWorkbook(f), nil
}

// File returns the underlying excelize file for advanced operations.
func (wb *Workbook) File() *excelize.File {
	return wb.file
}

// Sheets returns the sheet names in workbook order.
func (wb *Workbook) Sheets() []string {
	return wb.file.GetSheetList()
}

// Bytes serializes the workbook.
func (wb *Workbook) Bytes() ([]byte, error) {
	buf, err := wb.file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Close closes the underlying excelize file.
func (wb *Workbook) Close() error {
	return wb.file.Close()
}

// CellText returns the formatted text of a cell, or "" when it cannot be read.
func (wb *Workbook) CellText(sheet string, row, col int) string {
	name := cellName(col, row)
	if name == "" {
		return ""
	}
	v, err := wb.file.GetCellValue(sheet, name)
	if err != nil {
		return ""
	}
	return v
}

// SetCellText replaces the text of a cell. The cell keeps its style.
func (wb *Workbook) SetCellText(sheet string, row, col int, text string) error {
	return wb.file.SetCellStr(sheet, cellName(col, row), text)
}

// Formula returns the formula of a cell without the leading "=".
func (wb *Workbook) Formula(sheet string, row, col int) string {
	formula, err := wb.file.GetCellFormula(sheet, cellName(col, row))
	if err != nil {
		return ""
	}
	return formula
}

// HasBorder reports whether the cell style draws any border.
func (wb *Workbook) HasBorder(sheet string, row, col int) bool {
	styleID, err := wb.file.GetCellStyle(sheet, cellName(col, row))
	if err != nil || styleID == 0 {
		return false
	}
	if has, ok := wb.borders[styleID]; ok {
		return has
	}
	has := false
	if style, err := wb.file.GetStyle(styleID); err == nil && style != nil {
		for _, b := range style.Border {
			if b.Style > 0 {
				has = true
				break
			}
		}
	}
	wb.borders[styleID] = has
	return has
}

// MaxColumn returns the right-most used column of a sheet (at least 1).
// The sheet dimension is preferred because it covers style-only cells;
// the widest value row is the fallback.
func (wb *Workbook) MaxColumn(sheet string) int {
	maxCol := 1
	if dim, err := wb.file.GetSheetDimension(sheet); err == nil && dim != "" {
		if area, err := ParseAreaRef(dim); err == nil && area.Last.Col > maxCol {
			maxCol = area.Last.Col
		}
	}
	rows, err := wb.file.GetRows(sheet)
	if err == nil {
		for _, row := range rows {
			if len(row) > maxCol {
				maxCol = len(row)
			}
		}
	}
	return maxCol
}

// usedArea returns the last used row and column of a sheet, taking the larger
// of the recorded dimension and the value grid.
func (wb *Workbook) usedArea(sheet string) (rows, cols int) {
	if dim, err := wb.file.GetSheetDimension(sheet); err == nil && dim != "" {
		if area, err := ParseAreaRef(dim); err == nil {
			rows = area.Last.Row
		}
	}
	if n := len(wb.rows(sheet)); n > rows {
		rows = n
	}
	return rows, wb.MaxColumn(sheet)
}

// rows returns the value grid of a sheet; errors yield an empty grid.
func (wb *Workbook) rows(sheet string) [][]string {
	rows, err := wb.file.GetRows(sheet)
	if err != nil {
		return nil
	}
	return rows
}

// copyLiteral writes the value of src into dst keeping its type.
// It returns false when src holds nothing to copy.
func (wb *Workbook) copyLiteral(sheet string, src, dst string) bool {
	raw, err := wb.file.GetCellValue(sheet, src, excelize.Options{RawCellValue: true})
	if err != nil || raw == "" {
		return false
	}
	typ, err := wb.file.GetCellType(sheet, src)
	if err != nil {
		typ = excelize.CellTypeUnset
	}

	switch typ {
	case excelize.CellTypeBool:
		err = wb.file.SetCellBool(sheet, dst, raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeNumber, excelize.CellTypeDate, excelize.CellTypeUnset:
		if n, perr := strconv.ParseFloat(raw, 64); perr == nil {
			err = wb.file.SetCellFloat(sheet, dst, n, -1, 64)
		} else {
			err = wb.file.SetCellStr(sheet, dst, raw)
		}
	default:
		err = wb.file.SetCellStr(sheet, dst, raw)
	}
	return err == nil
}
