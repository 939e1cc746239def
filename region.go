package gradebook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// EndSource records how the bottom boundary of a Region was decided.
type EndSource int

const (
	EndFooter      EndSource = iota // a footer keyword row
	EndBlankRun                     // last non-empty row before a run of blank rows
	EndDefaultSpan                  // nothing found, fixed span from Start
	EndPinned                       // taken from the template descriptor
)

// String returns a human-readable name for the EndSource.
func (s EndSource) String() string {
	switch s {
	case EndFooter:
		return "footer"
	case EndBlankRun:
		return "blank-run"
	case EndDefaultSpan:
		return "default-span"
	case EndPinned:
		return "pinned"
	default:
		return "unknown"
	}
}

// Region is the half-open row range [Start, End) holding one row per student.
// Rows are 1-based. End is the footer row, or the first row past the data.
type Region struct {
	Start       int
	End         int
	HeaderRow   int  // 0 when no header row was found
	HeaderFound bool // header keyword matched or header row pinned
	FooterFound bool // footer keyword matched or footer row pinned
	EndSource   EndSource
}

// Capacity returns the number of student rows the region holds.
func (r Region) Capacity() int {
	return r.End - r.Start
}

// Missed reports whether neither boundary was backed by a signal in the sheet,
// i.e. the region is entirely made of fallback defaults.
func (r Region) Missed() bool {
	return !r.HeaderFound && !r.FooterFound && r.EndSource != EndBlankRun
}

// Validate checks the region against the sheet's hard limits.
func (r Region) Validate() error {
	if r.Start < 1 || r.Start > excelize.TotalRows {
		return fmt.Errorf("%w: start row %d out of range", ErrInvalidRegion, r.Start)
	}
	if r.End <= r.Start {
		return fmt.Errorf("%w: end row %d not after start row %d", ErrInvalidRegion, r.End, r.Start)
	}
	if r.End > excelize.TotalRows+1 {
		return fmt.Errorf("%w: end row %d out of range", ErrInvalidRegion, r.End)
	}
	return nil
}

// String formats the region as "rows 6-35 (30, footer)".
func (r Region) String() string {
	return fmt.Sprintf("rows %d-%d (%d, %s)", r.Start, r.End-1, r.Capacity(), r.EndSource)
}
