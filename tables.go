package gradebook

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// SnapshotTables returns the structured tables declared on a sheet.
// Take the snapshot before Resize; ExtendTables needs the original ranges.
func SnapshotTables(wb *Workbook, sheet string) ([]excelize.Table, error) {
	tables, err := wb.file.GetTables(sheet)
	if err != nil {
		return nil, fmt.Errorf("read tables of %q: %w", sheet, err)
	}
	return tables, nil
}

// ExtendTables moves the last row of every table that covers or follows the
// region to its original last row plus delta. Tables wholly above the region
// are left alone. excelize already shifts tables that straddle an insertion
// point, so a table is only rewritten when its range disagrees with the
// expected one. It returns the number of tables rewritten.
func ExtendTables(wb *Workbook, sheet string, before []excelize.Table, region Region, delta int, log zerolog.Logger) (int, error) {
	if len(before) == 0 || delta == 0 {
		return 0, nil
	}
	current, err := wb.file.GetTables(sheet)
	if err != nil {
		return 0, fmt.Errorf("read tables of %q: %w", sheet, err)
	}
	byName := make(map[string]excelize.Table, len(current))
	for _, t := range current {
		byName[t.Name] = t
	}

	updated := 0
	for _, orig := range before {
		origArea, err := ParseAreaRef(orig.Range)
		if err != nil {
			log.Warn().Err(err).Str("table", orig.Name).Msg("unreadable table range")
			continue
		}
		if origArea.Last.Row < region.Start-1 {
			continue
		}
		cur, ok := byName[orig.Name]
		if !ok {
			log.Warn().Str("sheet", sheet).Str("table", orig.Name).Msg("table disappeared during resize")
			continue
		}
		curArea, err := ParseAreaRef(cur.Range)
		if err != nil {
			continue
		}

		want := origArea.Last.Row + delta
		if want <= curArea.First.Row {
			want = curArea.First.Row + 1 // header plus one data row is the smallest table
		}
		if curArea.Last.Row == want {
			continue
		}
		curArea.Last.Row = want
		if err := replaceTable(wb.file, sheet, cur, curArea.Range()); err != nil {
			return updated, err
		}
		log.Debug().Str("sheet", sheet).Str("table", cur.Name).Str("range", curArea.Range()).Msg("table bounds updated")
		updated++
	}
	return updated, nil
}

// replaceTable re-declares a table over a new range, keeping its name, style and flags.
// excelize.Table does not carry a totals row, calculated column formulas or
// autofilter settings, so a re-declared table loses them. ExtendTables only
// gets here when excelize's own shift left the range wrong.
func replaceTable(f *excelize.File, sheet string, t excelize.Table, newRange string) error {
	if err := f.DeleteTable(t.Name); err != nil {
		return fmt.Errorf("drop table %q: %w", t.Name, err)
	}
	err := f.AddTable(sheet, &excelize.Table{
		Range:             newRange,
		Name:              t.Name,
		StyleName:         t.StyleName,
		ShowColumnStripes: t.ShowColumnStripes,
		ShowFirstColumn:   t.ShowFirstColumn,
		ShowHeaderRow:     t.ShowHeaderRow,
		ShowLastColumn:    t.ShowLastColumn,
		ShowRowStripes:    t.ShowRowStripes,
	})
	if err != nil {
		return fmt.Errorf("declare table %q over %s: %w", t.Name, newRange, err)
	}
	return nil
}
