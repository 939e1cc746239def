package gradebook

// LocateOptions tunes the table region heuristics.
// Zero fields take the defaults from DefaultLocateOptions.
type LocateOptions struct {
	HeaderKeywords   []string
	FooterKeywords   []string
	HeaderScanRows   int // rows searched for the header keyword, from row 1
	FooterScanRows   int // rows searched below Start for the footer
	FooterScanCols   int // columns searched for the footer keyword, from column A
	FallbackStartRow int // Start when no header keyword is found
	DefaultSpan      int // capacity when neither footer nor blank run is found
	BlankRunLength   int // empty rows in a row that end the data

	// Rule pins boundaries from a template descriptor; nil means heuristics only.
	Rule *SheetRule
}

// DefaultLocateOptions returns the heuristics the gradebook templates were tuned for.
func DefaultLocateOptions() LocateOptions {
	return LocateOptions{
		HeaderKeywords:   DefaultHeaderKeywords,
		FooterKeywords:   DefaultFooterKeywords,
		HeaderScanRows:   20,
		FooterScanRows:   300,
		FooterScanCols:   5,
		FallbackStartRow: 6,
		DefaultSpan:      30,
		BlankRunLength:   5,
	}
}

func (o LocateOptions) withDefaults() LocateOptions {
	d := DefaultLocateOptions()
	if o.HeaderKeywords == nil {
		o.HeaderKeywords = d.HeaderKeywords
	}
	if o.FooterKeywords == nil {
		o.FooterKeywords = d.FooterKeywords
	}
	if o.HeaderScanRows <= 0 {
		o.HeaderScanRows = d.HeaderScanRows
	}
	if o.FooterScanRows <= 0 {
		o.FooterScanRows = d.FooterScanRows
	}
	if o.FooterScanCols <= 0 {
		o.FooterScanCols = d.FooterScanCols
	}
	if o.FallbackStartRow <= 0 {
		o.FallbackStartRow = d.FallbackStartRow
	}
	if o.DefaultSpan <= 0 {
		o.DefaultSpan = d.DefaultSpan
	}
	if o.BlankRunLength <= 0 {
		o.BlankRunLength = d.BlankRunLength
	}
	return o
}

// Locate finds the student rows of a sheet.
//
// Start is the row after the first row (within HeaderScanRows) holding a header
// keyword, or FallbackStartRow. End is the first row at or below Start whose
// leading columns hold a footer keyword; without one, End follows the last
// non-empty row before a run of BlankRunLength visually empty rows (no value, no
// border), and failing that Start+DefaultSpan. Boundaries pinned by opts.Rule win
// over the heuristics. Locate never fails; the result always has End > Start.
func Locate(wb *Workbook, sheet string, opts LocateOptions) Region {
	opts = opts.withDefaults()
	grid := wb.rows(sheet)
	rule := opts.Rule

	var r Region
	switch {
	case rule != nil && rule.HeaderRow > 0:
		r.HeaderRow, r.HeaderFound = rule.HeaderRow, true
	default:
		if row := findHeader(grid, newKeywordSet(opts.HeaderKeywords), opts.HeaderScanRows); row > 0 {
			r.HeaderRow, r.HeaderFound = row, true
		}
	}
	if r.HeaderFound {
		r.Start = r.HeaderRow + 1
	} else {
		r.Start = opts.FallbackStartRow
	}

	switch {
	case rule != nil && rule.FooterRow > 0:
		r.End, r.FooterFound, r.EndSource = rule.FooterRow, true, EndPinned
	case rule != nil && rule.DataRows > 0:
		r.End, r.FooterFound, r.EndSource = r.Start+rule.DataRows, true, EndPinned
	default:
		footer := newKeywordSet(opts.FooterKeywords)
		if rule != nil && rule.FooterMarker != "" {
			footer = newKeywordSet([]string{rule.FooterMarker})
		}
		if row := findFooter(grid, footer, r.Start, opts.FooterScanRows, opts.FooterScanCols); row > 0 {
			r.End, r.FooterFound, r.EndSource = row, true, EndFooter
		} else {
			r.End, r.EndSource = blankRunEnd(wb, sheet, grid, r.Start, opts)
		}
	}

	if r.End < r.Start+1 {
		r.End = r.Start + 1
	}
	return r
}

// findHeader returns the 1-based row of the first header keyword, or 0.
func findHeader(grid [][]string, ks keywordSet, limit int) int {
	if ks.empty() {
		return 0
	}
	for i := 0; i < limit && i < len(grid); i++ {
		for _, text := range grid[i] {
			if ks.match(text) {
				return i + 1
			}
		}
	}
	return 0
}

// findFooter returns the 1-based row of the first footer keyword at or below start, or 0.
func findFooter(grid [][]string, ks keywordSet, start, limit, cols int) int {
	if ks.empty() {
		return 0
	}
	for row := start; row < start+limit && row <= len(grid); row++ {
		cells := grid[row-1]
		for c := 0; c < cols && c < len(cells); c++ {
			if ks.match(cells[c]) {
				return row
			}
		}
	}
	return 0
}

// blankRunEnd scans down from start for BlankRunLength consecutive visually
// empty rows and returns the row after the last non-empty one.
func blankRunEnd(wb *Workbook, sheet string, grid [][]string, start int, opts LocateOptions) (int, EndSource) {
	maxCol := wb.MaxColumn(sheet)
	lastNonEmpty, run := 0, 0
	for row := start; row < start+opts.FooterScanRows; row++ {
		if rowVisuallyEmpty(wb, sheet, grid, row, maxCol) {
			run++
			if run >= opts.BlankRunLength {
				break
			}
			continue
		}
		run = 0
		lastNonEmpty = row
	}
	if lastNonEmpty == 0 {
		return start + opts.DefaultSpan, EndDefaultSpan
	}
	return lastNonEmpty + 1, EndBlankRun
}

func rowVisuallyEmpty(wb *Workbook, sheet string, grid [][]string, row, maxCol int) bool {
	if row <= len(grid) {
		for _, text := range grid[row-1] {
			if text != "" {
				return false
			}
		}
	}
	for col := 1; col <= maxCol; col++ {
		if wb.HasBorder(sheet, row, col) {
			return false
		}
	}
	return true
}
