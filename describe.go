package gradebook

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SheetLayout is what processing would see on one template sheet.
type SheetLayout struct {
	Index        int
	Sheet        string
	Rule         *SheetRule // nil when no descriptor rule applies
	Region       Region
	MaxColumn    int
	InsertAt     int // where rows go when the region grows
	ReferenceRow int // row cloned into inserted rows
	Tables       []excelize.Table
	Checker      bool // sheet survives into the checker workbook
}

// Inspect locates the student region, tables and checker membership of every
// sheet in a template without modifying it.
func Inspect(template []byte, opts ...Option) ([]SheetLayout, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	wb, err := OpenWorkbook(template)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	keep := make(map[string]bool)
	for _, name := range o.keep() {
		keep[name] = true
	}

	var layouts []SheetLayout
	for i, sheet := range wb.Sheets() {
		lo := o.locate
		lo.Rule = o.descriptor.RuleFor(sheet, i)
		region := Locate(wb, sheet, lo)
		tables, err := SnapshotTables(wb, sheet)
		if err != nil {
			return nil, err
		}
		at := o.strategy.insertionPoint(region)
		layouts = append(layouts, SheetLayout{
			Index:        i,
			Sheet:        sheet,
			Rule:         lo.Rule,
			Region:       region,
			MaxColumn:    wb.MaxColumn(sheet),
			InsertAt:     at,
			ReferenceRow: at - 1,
			Tables:       tables,
			Checker:      keep[sheet],
		})
	}
	return layouts, nil
}

// Describe returns a human-readable summary of how a template would be processed.
// Useful when writing a descriptor for a new template.
func Describe(template []byte, opts ...Option) (string, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	layouts, err := Inspect(template, opts...)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Template: %d sheets, strategy %s\n", len(layouts), o.strategy)
	for _, l := range layouts {
		describeSheet(&b, l)
	}
	return b.String(), nil
}

func describeSheet(b *strings.Builder, l SheetLayout) {
	role := ""
	if l.Index == 0 {
		role = " (primary)"
	}
	fmt.Fprintf(b, "Sheet %d %q%s\n", l.Index, l.Sheet, role)

	r := l.Region
	if r.HeaderFound {
		fmt.Fprintf(b, "  header: row %d\n", r.HeaderRow)
	} else {
		fmt.Fprintf(b, "  header: not found\n")
	}
	fmt.Fprintf(b, "  students: %s\n", r)
	if r.Missed() {
		b.WriteString("  warning: region from defaults\n")
	}

	if l.Rule.Fixed() && l.Index != 0 {
		b.WriteString("  rows: fixed\n")
	} else {
		fmt.Fprintf(b, "  insert at: row %d, cloning row %d across %d columns\n", l.InsertAt, l.ReferenceRow, l.MaxColumn)
	}

	if len(l.Tables) > 0 {
		b.WriteString("  tables:\n")
		for _, t := range l.Tables {
			fmt.Fprintf(b, "    %s %s\n", t.Name, t.Range)
		}
	}
	if l.Checker {
		b.WriteString("  checker: kept\n")
	}
}
