package gradebook

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Strategy selects where rows are inserted when a region has to grow.
type Strategy int

const (
	// InsertAtBoundary inserts directly above the footer row, pushing it down.
	InsertAtBoundary Strategy = iota
	// InsertAtSafeOffset inserts in the middle of the region so that range
	// formulas spanning the whole region grow along with it.
	InsertAtSafeOffset
)

// String returns the flag spelling of the strategy.
func (s Strategy) String() string {
	switch s {
	case InsertAtBoundary:
		return "boundary"
	case InsertAtSafeOffset:
		return "safe-offset"
	default:
		return "unknown"
	}
}

// ParseStrategy parses "boundary" or "safe-offset".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "boundary":
		return InsertAtBoundary, nil
	case "safe-offset", "safe_offset", "midpoint":
		return InsertAtSafeOffset, nil
	default:
		return InsertAtBoundary, fmt.Errorf("unknown strategy %q (must be boundary or safe-offset)", s)
	}
}

// insertionPoint returns the row before which new rows go.
func (s Strategy) insertionPoint(r Region) int {
	if s == InsertAtSafeOffset && r.Capacity() >= 2 {
		return r.Start + r.Capacity()/2
	}
	return r.End
}

// ResizeResult describes what Resize did to a sheet.
type ResizeResult struct {
	DataStart           int // first row for student data; equals the region Start
	Delta               int // net rows added (negative when rows were removed)
	InsertAt            int // row where insertion happened, 0 when nothing was inserted
	Inserted            int
	Removed             int
	TranslationFailures int // formulas copied verbatim into new rows
}

// Resized returns the region after a resize by delta rows.
func (r Region) Resized(delta int) Region {
	r.End += delta
	return r
}

// Resize grows or shrinks region to exactly target rows.
//
// Growing inserts target-capacity rows at the strategy's insertion point and
// fills each of them by cloning the row right above the insertion point, for
// every column up to the sheet's right-most column. Shrinking removes the
// trailing capacity-target rows of the region so the first target rows and the
// footer survive. A target below 1 is refused with ErrEmptyRoster.
func Resize(wb *Workbook, sheet string, region Region, target int, strategy Strategy, log zerolog.Logger) (ResizeResult, error) {
	res := ResizeResult{DataStart: region.Start}
	if target < 1 {
		return res, fmt.Errorf("resize %q to %d rows: %w", sheet, target, ErrEmptyRoster)
	}
	if err := region.Validate(); err != nil {
		return res, fmt.Errorf("resize %q: %w", sheet, err)
	}

	f := wb.file
	capacity := region.Capacity()
	switch {
	case target > capacity:
		add := target - capacity
		at := strategy.insertionPoint(region)
		maxCol := wb.MaxColumn(sheet)
		if err := f.InsertRows(sheet, at, add); err != nil {
			return res, fmt.Errorf("insert %d rows at row %d on %q: %w", add, at, sheet, err)
		}
		ref := at - 1
		for i := 0; i < add; i++ {
			res.TranslationFailures += CloneRow(wb, sheet, ref, at+i, maxCol, log)
		}
		res.InsertAt, res.Inserted, res.Delta = at, add, add
		log.Debug().Str("sheet", sheet).Int("at", at).Int("rows", add).Int("reference_row", ref).Msg("rows inserted")

	case target < capacity:
		remove := capacity - target
		first := region.Start + target
		for i := 0; i < remove; i++ {
			if err := f.RemoveRow(sheet, first); err != nil {
				return res, fmt.Errorf("remove row %d on %q: %w", first, sheet, err)
			}
		}
		res.Removed, res.Delta = remove, -remove
		log.Debug().Str("sheet", sheet).Int("from", first).Int("rows", remove).Msg("rows removed")
	}
	return res, nil
}
