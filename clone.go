package gradebook

import (
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// CloneCell copies the style and content of src into dst on the same sheet.
// The style is copied whenever src carries an explicit one. A formula is
// shifted by the distance between the two cells; when that fails the formula
// text is copied verbatim and translated is false. Literal values are copied as-is.
// Only dst is written. Write errors are absorbed.
func CloneCell(wb *Workbook, sheet string, src, dst CellRef, log zerolog.Logger) (translated bool) {
	translated = true
	srcName, dstName := src.CellName(), dst.CellName()
	if srcName == "" || dstName == "" {
		return translated
	}
	f := wb.file

	if styleID, err := f.GetCellStyle(sheet, srcName); err == nil && styleID != 0 {
		if err := f.SetCellStyle(sheet, dstName, dstName, styleID); err != nil {
			log.Debug().Err(err).Str("cell", dstName).Msg("copy style")
		}
	}

	if formula, err := f.GetCellFormula(sheet, srcName); err == nil && formula != "" {
		shifted, terr := TranslateFormula(formula, dst.Row-src.Row, dst.Col-src.Col)
		if terr != nil {
			log.Debug().Err(terr).Str("from", srcName).Str("to", dstName).Msg("formula copied verbatim")
			shifted = formula
			translated = false
		}
		if err := f.SetCellFormula(sheet, dstName, shifted); err != nil {
			log.Debug().Err(err).Str("cell", dstName).Msg("set formula")
		}
		return translated
	}

	wb.copyLiteral(sheet, srcName, dstName)
	return translated
}

// CloneRow fills row dst with clones of every cell in row src up to maxCol.
// It also carries over the row height and any merged range that lies entirely
// inside row src. It returns the number of formulas that had to be copied verbatim.
func CloneRow(wb *Workbook, sheet string, src, dst, maxCol int, log zerolog.Logger) int {
	failures := 0
	for col := 1; col <= maxCol; col++ {
		if !CloneCell(wb, sheet, NewCellRef(sheet, src, col), NewCellRef(sheet, dst, col), log) {
			failures++
		}
	}

	f := wb.file
	if h, err := f.GetRowHeight(sheet, src); err == nil && h > 0 {
		if err := f.SetRowHeight(sheet, dst, h); err != nil {
			log.Debug().Err(err).Int("row", dst).Msg("row height")
		}
	}

	for _, mc := range rowMerges(f, sheet, src) {
		start, end := mc.First, mc.Last
		if err := f.MergeCell(sheet, cellName(start.Col, dst), cellName(end.Col, dst)); err != nil {
			log.Debug().Err(err).Int("row", dst).Msg("merge cells")
		}
	}
	return failures
}

// rowMerges lists merged ranges that start and end on the given row.
func rowMerges(f *excelize.File, sheet string, row int) []AreaRef {
	merged, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil
	}
	var out []AreaRef
	for _, mc := range merged {
		area, err := ParseAreaRef(mc.GetStartAxis() + ":" + mc.GetEndAxis())
		if err != nil {
			continue
		}
		if area.First.Row == row && area.Last.Row == row {
			out = append(out, area)
		}
	}
	return out
}
