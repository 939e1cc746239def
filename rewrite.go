package gradebook

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// Header carries the strings written into a sheet's title block.
type Header struct {
	Class   string
	Module  string
	Advisor string
}

// Title returns the gradebook title, e.g. "A1.01 GRADEBOOK - MODULE 3".
func (h Header) Title() string {
	return fmt.Sprintf("%s GRADEBOOK - %s", h.Class, h.Module)
}

// AdvisorLine returns the advisor cell text, e.g. "Advisor: Jane Doe".
func (h Header) AdvisorLine() string {
	return "Advisor: " + h.Advisor
}

const (
	headerScanRows = 10
	headerScanCols = 20
)

// Rewrite updates the title block of a sheet and returns the sheet's name afterwards.
//
// The primary sheet (index 0) is renamed to the class name with the characters
// Excel forbids in titles stripped; when the result is empty, taken by another
// sheet or refused by excelize, the original title stays. In rows 1-10, columns
// A-T, a cell containing both "GRADEBOOK" and "MODULE" receives Header.Title and
// a cell containing "Advisor:" receives Header.AdvisorLine. Only text changes.
func Rewrite(wb *Workbook, index int, sheet string, h Header, log zerolog.Logger) string {
	if index == 0 {
		sheet = renameSheet(wb, sheet, h.Class, log)
	}

	for row := 1; row <= headerScanRows; row++ {
		for col := 1; col <= headerScanCols; col++ {
			text := wb.CellText(sheet, row, col)
			if text == "" {
				continue
			}
			var replacement string
			switch {
			case strings.Contains(text, "GRADEBOOK") && strings.Contains(text, "MODULE"):
				replacement = h.Title()
			case strings.Contains(text, "Advisor:"):
				replacement = h.AdvisorLine()
			default:
				continue
			}
			if err := wb.SetCellText(sheet, row, col, replacement); err != nil {
				log.Warn().Err(err).Str("sheet", sheet).Str("cell", cellName(col, row)).Msg("rewrite header cell")
			}
		}
	}
	return sheet
}

func renameSheet(wb *Workbook, sheet, class string, log zerolog.Logger) string {
	title := SafeSheetName(class)
	if title == "" || title == sheet {
		return sheet
	}
	for _, other := range wb.Sheets() {
		if other != sheet && strings.EqualFold(other, title) {
			log.Warn().Str("sheet", sheet).Str("title", title).Msg("sheet title taken, keeping original")
			return sheet
		}
	}
	if err := wb.file.SetSheetName(sheet, title); err != nil {
		log.Warn().Err(err).Str("sheet", sheet).Str("title", title).Msg("rename sheet")
		return sheet
	}
	if n := retargetSheetRefs(wb, sheet, title, log); n > 0 {
		log.Debug().Str("from", sheet).Str("to", title).Int("formulas", n).Msg("sheet references updated")
	}
	return title
}

// retargetSheetRefs rewrites formulas and defined names that still name the
// sheet by its old title. It returns the number of formulas and names changed.
func retargetSheetRefs(wb *Workbook, old, title string, log zerolog.Logger) int {
	f := wb.file
	changed := 0
	for _, sheet := range wb.Sheets() {
		// Formula cells without a cached value do not widen the value grid,
		// so the title block window is always covered.
		rows, cols := wb.usedArea(sheet)
		rows, cols = max(rows, headerScanRows), max(cols, headerScanCols)
		for row := 1; row <= rows; row++ {
			for col := 1; col <= cols; col++ {
				formula := wb.Formula(sheet, row, col)
				renamed, ok := RenameSheetRefs(formula, old, title)
				if !ok {
					continue
				}
				if err := f.SetCellFormula(sheet, cellName(col, row), renamed); err != nil {
					log.Warn().Err(err).Str("sheet", sheet).Str("cell", cellName(col, row)).Msg("update sheet reference")
					continue
				}
				changed++
			}
		}
	}

	for _, dn := range f.GetDefinedName() {
		renamed, ok := RenameSheetRefs(dn.RefersTo, old, title)
		if !ok {
			continue
		}
		if err := f.DeleteDefinedName(&excelize.DefinedName{Name: dn.Name, Scope: dn.Scope}); err != nil {
			log.Warn().Err(err).Str("name", dn.Name).Msg("drop defined name")
			continue
		}
		dn.RefersTo = renamed
		if err := f.SetDefinedName(&dn); err != nil {
			log.Warn().Err(err).Str("name", dn.Name).Msg("redefine name")
			continue
		}
		changed++
	}
	return changed
}
