package gradebook

import "fmt"

// Severity indicates the severity of a validation issue.
type Severity int

const (
	SeverityError   Severity = iota // Processing will fail or mangle the sheet
	SeverityWarning                 // Processing may produce unexpected results
)

// ValidationIssue represents a single problem found in a template.
// CellRef carries only a sheet for sheet-level issues and is empty for
// workbook-level ones.
type ValidationIssue struct {
	Severity Severity
	CellRef  CellRef
	Message  string
}

// String formats the issue as "[ERROR] Sheet1!A2: message" or "[WARN] ...".
func (v ValidationIssue) String() string {
	sev := "ERROR"
	if v.Severity == SeverityWarning {
		sev = "WARN"
	}
	loc := "workbook"
	switch {
	case v.CellRef.Row > 0 && v.CellRef.Col > 0:
		loc = v.CellRef.String()
	case v.CellRef.Sheet != "":
		loc = v.CellRef.Sheet
	}
	return fmt.Sprintf("[%s] %s: %s", sev, loc, v.Message)
}

// Validate checks a template against the options without processing it.
// A non-nil error means the template could not be opened at all.
func Validate(template []byte, opts ...Option) ([]ValidationIssue, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	layouts, err := Inspect(template, opts...)
	if err != nil {
		return nil, err
	}
	wb, err := OpenWorkbook(template)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	var issues []ValidationIssue
	issues = append(issues, validateRuleNames(o.descriptor, layouts)...)
	for _, l := range layouts {
		issues = append(issues, validateLayout(l)...)
		issues = append(issues, validateReferenceRow(wb, l)...)
	}
	if !hasChecker(layouts) {
		issues = append(issues, ValidationIssue{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("no sheet named %v, no checker workbook will be produced", o.keep()),
		})
	}
	return issues, nil
}

// validateRuleNames reports descriptor rules naming a sheet the template lacks.
func validateRuleNames(d *Descriptor, layouts []SheetLayout) []ValidationIssue {
	if d == nil {
		return nil
	}
	present := make(map[string]bool, len(layouts))
	for _, l := range layouts {
		present[l.Sheet] = true
	}
	var issues []ValidationIssue
	for _, rule := range d.Sheets {
		if rule.Name != "" && !present[rule.Name] {
			issues = append(issues, ValidationIssue{
				Severity: SeverityError,
				Message:  fmt.Sprintf("descriptor rule names missing sheet %q", rule.Name),
			})
		}
	}
	return issues
}

func validateLayout(l SheetLayout) []ValidationIssue {
	at := CellRef{Sheet: l.Sheet}
	var issues []ValidationIssue
	if l.Region.Missed() {
		issues = append(issues, ValidationIssue{
			Severity: SeverityWarning,
			CellRef:  at,
			Message:  fmt.Sprintf("no header or footer found, defaulting to %s", l.Region),
		})
	} else if !l.Region.HeaderFound {
		issues = append(issues, ValidationIssue{
			Severity: SeverityWarning,
			CellRef:  at,
			Message:  fmt.Sprintf("no header row found, students start at row %d", l.Region.Start),
		})
	}
	if err := l.Region.Validate(); err != nil {
		issues = append(issues, ValidationIssue{Severity: SeverityError, CellRef: at, Message: err.Error()})
	}
	if l.Index == 0 && l.Rule.Fixed() {
		issues = append(issues, ValidationIssue{
			Severity: SeverityWarning,
			CellRef:  at,
			Message:  "rows: fixed is ignored on the primary sheet",
		})
	}
	return issues
}

// validateReferenceRow reports formulas in the cloned row that cannot be shifted.
func validateReferenceRow(wb *Workbook, l SheetLayout) []ValidationIssue {
	if (l.Rule.Fixed() && l.Index != 0) || l.ReferenceRow < 1 {
		return nil
	}
	var issues []ValidationIssue
	for col := 1; col <= l.MaxColumn; col++ {
		formula := wb.Formula(l.Sheet, l.ReferenceRow, col)
		if formula == "" {
			continue
		}
		if _, err := TranslateFormula(formula, 1, 0); err != nil {
			issues = append(issues, ValidationIssue{
				Severity: SeverityWarning,
				CellRef:  NewCellRef(l.Sheet, l.ReferenceRow, col),
				Message:  fmt.Sprintf("formula =%s will be copied verbatim into new rows: %v", formula, err),
			})
		}
	}
	return issues
}

func hasChecker(layouts []SheetLayout) bool {
	for _, l := range layouts {
		if l.Checker {
			return true
		}
	}
	return false
}
