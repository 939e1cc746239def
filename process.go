package gradebook

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
)

// SheetReport records what processing did to one sheet.
type SheetReport struct {
	Index               int
	Template            string // sheet title in the template
	Sheet               string // sheet title in the output
	Region              Region // region before resizing
	Fixed               bool   // kept at template size by a descriptor rule
	Delta               int
	InsertAt            int
	TranslationFailures int
	TablesUpdated       int
	Missed              bool // region made of fallback defaults only
}

// Report summarizes one processed class.
type Report struct {
	Students int
	Advisor  string
	Sheets   []SheetReport
}

// TranslationFailures returns the number of formulas copied verbatim across all sheets.
func (r Report) TranslationFailures() int {
	n := 0
	for _, s := range r.Sheets {
		n += s.TranslationFailures
	}
	return n
}

// Misses returns the titles of sheets whose region came from fallback defaults.
func (r Report) Misses() []string {
	var out []string
	for _, s := range r.Sheets {
		if s.Missed {
			out = append(out, s.Sheet)
		}
	}
	return out
}

// Output is the result of processing one class.
type Output struct {
	Class   string
	Full    []byte // every sheet, resized and filled
	Checker []byte // keep-list sheets only; nil when the template has none
	Report  Report
}

// Processor turns a template and a class roster into gradebook workbooks.
// A Processor holds no per-class state and may be shared between goroutines.
type Processor struct {
	opts *Options
}

// NewProcessor creates a Processor with the given options.
func NewProcessor(opts ...Option) *Processor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Processor{opts: o}
}

// Process builds the gradebook of one class from template bytes.
//
// Every sheet gets its header rewritten and its student region resized to
// len(students) rows, unless a descriptor rule marks it fixed. Students are
// written on the primary sheet only, leaving formula cells alone. The checker
// workbook is derived from the serialized full workbook. Failures are returned
// as *ClassError.
func (p *Processor) Process(ctx context.Context, template []byte, class string, students []Student, module string) (*Output, error) {
	out, err := p.process(ctx, template, class, students, module)
	if err != nil {
		return nil, &ClassError{Class: class, Err: err}
	}
	return out, nil
}

func (p *Processor) process(ctx context.Context, template []byte, class string, students []Student, module string) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, ErrEmptyRoster
	}
	cols, err := p.opts.layout().columns()
	if err != nil {
		return nil, err
	}

	wb, err := OpenWorkbook(template)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	log := p.opts.logger.With().Str("class", class).Logger()

	advisor := students[0].Advisor
	if advisor == "" {
		advisor = p.opts.advisorPlaceholder
	}
	header := Header{Class: class, Module: module, Advisor: advisor}
	report := Report{Students: len(students), Advisor: advisor}

	var primary string
	var dataStart int
	for i, tmplSheet := range wb.Sheets() {
		sr, err := p.processSheet(wb, i, tmplSheet, header, len(students), log)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			primary, dataStart = sr.Sheet, sr.Region.Start
		}
		report.Sheets = append(report.Sheets, sr)
	}

	if err := writeStudents(wb, primary, dataStart, cols, students); err != nil {
		return nil, err
	}

	full, err := wb.Bytes()
	if err != nil {
		return nil, err
	}
	checker, err := BuildChecker(full, p.opts.keep())
	if err != nil {
		return nil, fmt.Errorf("build checker: %w", err)
	}
	if checker == nil {
		log.Debug().Strs("keep", p.opts.keep()).Msg("no checker sheets in template")
	}

	log.Info().
		Int("students", len(students)).
		Int("sheets", len(report.Sheets)).
		Int("translation_failures", report.TranslationFailures()).
		Bool("checker", checker != nil).
		Msg("class processed")

	return &Output{Class: class, Full: full, Checker: checker, Report: report}, nil
}

// processSheet runs rewrite, locate, resize and table update on one sheet.
func (p *Processor) processSheet(wb *Workbook, index int, tmplSheet string, h Header, target int, log zerolog.Logger) (SheetReport, error) {
	sheet := Rewrite(wb, index, tmplSheet, h, log)
	log = log.With().Str("sheet", sheet).Logger()

	rule := p.opts.descriptor.RuleFor(tmplSheet, index)
	lo := p.opts.locate
	lo.Rule = rule
	region := Locate(wb, sheet, lo)

	sr := SheetReport{
		Index:    index,
		Template: tmplSheet,
		Sheet:    sheet,
		Region:   region,
		Missed:   region.Missed(),
	}
	if sr.Missed {
		if p.opts.strictRegions {
			return sr, fmt.Errorf("sheet %q: no header or footer found: %w", sheet, ErrInvalidRegion)
		}
		log.Warn().Str("region", region.String()).Msg("region not found, using defaults")
	}
	if err := region.Validate(); err != nil {
		return sr, fmt.Errorf("sheet %q: %w", sheet, err)
	}

	if rule.Fixed() {
		if index != 0 {
			sr.Fixed = true
			log.Debug().Msg("fixed sheet, not resized")
			return sr, nil
		}
		log.Warn().Msg("primary sheet always follows the roster, ignoring rows: fixed")
	}

	before, err := SnapshotTables(wb, sheet)
	if err != nil {
		return sr, err
	}
	res, err := Resize(wb, sheet, region, target, p.opts.strategy, log)
	if err != nil {
		return sr, err
	}
	sr.Delta, sr.InsertAt, sr.TranslationFailures = res.Delta, res.InsertAt, res.TranslationFailures
	if res.TranslationFailures > 0 {
		log.Warn().Int("count", res.TranslationFailures).Msg("formulas copied verbatim")
	}

	sr.TablesUpdated, err = ExtendTables(wb, sheet, before, region, res.Delta, log)
	if err != nil {
		return sr, err
	}
	log.Debug().Str("region", region.String()).Int("delta", res.Delta).Msg("sheet resized")
	return sr, nil
}

// writeStudents fills one row per student from dataStart: sequence number,
// id, first name and last name. Cells holding a formula are skipped.
func writeStudents(wb *Workbook, sheet string, dataStart int, cols [4]int, students []Student) error {
	f := wb.file
	for i, s := range students {
		row := dataStart + i
		values := [4]any{i + 1, studentID(s.No), s.Name, s.Surname}
		for j, col := range cols {
			if wb.Formula(sheet, row, col) != "" {
				continue
			}
			if err := f.SetCellValue(sheet, cellName(col, row), values[j]); err != nil {
				return fmt.Errorf("write student %d on %q: %w", i+1, sheet, err)
			}
		}
	}
	return nil
}

// studentID keeps numeric ids numeric; ids with leading zeros or letters stay text.
func studentID(no string) any {
	if n, err := strconv.Atoi(no); err == nil && strconv.Itoa(n) == no {
		return n
	}
	return no
}
