package gradebook

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Student is one roster row.
type Student struct {
	Class   string
	No      string
	Name    string
	Surname string
	Advisor string
}

// env exposes the student to select expressions.
func (s Student) env() map[string]any {
	return map[string]any{
		"Class":   s.Class,
		"No":      s.No,
		"Name":    s.Name,
		"Surname": s.Surname,
		"Advisor": s.Advisor,
	}
}

// ColumnMap names the roster header cells holding each student field.
// Header names are compared case-insensitively after trimming.
type ColumnMap struct {
	Class   string
	No      string
	Name    string
	Surname string
	Advisor string
}

// DefaultColumnMap matches a roster whose header row reads
// Class, No, Name, Surname, Advisor.
func DefaultColumnMap() ColumnMap {
	return ColumnMap{
		Class:   "Class",
		No:      "No",
		Name:    "Name",
		Surname: "Surname",
		Advisor: "Advisor",
	}
}

// LoadRoster reads students from an xlsx roster. The first row is the header.
// sheet may be empty to read the first sheet. A mapped column missing from the
// header is an ErrMissingColumn, except Advisor, which is left empty so the
// processor can substitute its placeholder. Rows without a class are skipped.
func LoadRoster(r io.Reader, sheet string, cm ColumnMap) ([]Student, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read roster sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("roster sheet %q has no header row: %w", sheet, ErrMissingColumn)
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, dup := header[key]; !dup && key != "" {
			header[key] = i
		}
	}
	find := func(name string) int {
		if i, ok := header[strings.ToLower(strings.TrimSpace(name))]; ok {
			return i
		}
		return -1
	}

	cols := [4]int{find(cm.Class), find(cm.No), find(cm.Name), find(cm.Surname)}
	for i, name := range []string{cm.Class, cm.No, cm.Name, cm.Surname} {
		if cols[i] < 0 {
			return nil, fmt.Errorf("column %q: %w", name, ErrMissingColumn)
		}
	}
	advisorCol := -1
	if cm.Advisor != "" {
		advisorCol = find(cm.Advisor)
	}

	cell := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var students []Student
	for _, row := range rows[1:] {
		s := Student{
			Class:   cell(row, cols[0]),
			No:      cell(row, cols[1]),
			Name:    cell(row, cols[2]),
			Surname: cell(row, cols[3]),
			Advisor: cell(row, advisorCol),
		}
		if s.Class == "" {
			continue
		}
		students = append(students, s)
	}
	return students, nil
}

// ClassRoster is the students of one class in roster order.
type ClassRoster struct {
	Class    string
	Students []Student
}

// Advisor returns the advisor of the first student, or "".
func (c ClassRoster) Advisor() string {
	if len(c.Students) == 0 {
		return ""
	}
	return c.Students[0].Advisor
}

// GroupByClass splits students by class, keeping classes in first-seen order.
func GroupByClass(students []Student) []ClassRoster {
	index := make(map[string]int)
	var groups []ClassRoster
	for _, s := range students {
		i, ok := index[s.Class]
		if !ok {
			i = len(groups)
			index[s.Class] = i
			groups = append(groups, ClassRoster{Class: s.Class})
		}
		groups[i].Students = append(groups[i].Students, s)
	}
	return groups
}

// SelectClasses keeps only the named classes, in the order of groups.
// An empty names list keeps every class.
func SelectClasses(groups []ClassRoster, names []string) []ClassRoster {
	if len(names) == 0 {
		return groups
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []ClassRoster
	for _, g := range groups {
		if want[g.Class] {
			out = append(out, g)
		}
	}
	return out
}

// SelectStudents keeps the students for which the boolean expression holds.
// The expression sees Class, No, Name, Surname and Advisor.
func SelectStudents(students []Student, expression string) ([]Student, error) {
	if expression == "" {
		return students, nil
	}
	if err := CheckExpression(expression); err != nil {
		return nil, err
	}
	eval := NewExpressionEvaluator()
	var out []Student
	for _, s := range students {
		ok, err := eval.IsConditionTrue(expression, s.env())
		if err != nil {
			return nil, fmt.Errorf("select student %s: %w", s.No, err)
		}
		if ok {
			out = append(out, s)
		}
	}
	return out, nil
}
