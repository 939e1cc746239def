package gradebook

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueStrings(issues []ValidationIssue) string {
	var lines []string
	for _, i := range issues {
		lines = append(lines, i.String())
	}
	return strings.Join(lines, "\n")
}

func TestValidate_CleanTemplate(t *testing.T) {
	tmpl := templateBytes(t, newTemplate(t,
		sheetSpec{name: "Gradebook", capacity: 30},
		sheetSpec{name: "MidTerm", capacity: 30},
	))

	issues, err := Validate(tmpl)
	require.NoError(t, err)
	assert.Empty(t, issues, issueStrings(issues))
}

func TestValidate_Problems(t *testing.T) {
	tf := newTemplate(t,
		sheetSpec{name: "Gradebook", capacity: 5},
		sheetSpec{name: "Notes", noHeader: true, noFooter: true},
		sheetSpec{name: "Quiz", capacity: 5, noHeader: true},
	)
	require.NoError(t, tf.SetCellFormula("Gradebook", "H10", "[1]Rates!A1*2"))
	tmpl := templateBytes(t, tf)

	d, err := LoadDescriptorString(`
sheets:
  - name: Gradebook
    rows: fixed
  - name: Attendance
    header_row: 4
`)
	require.NoError(t, err)

	issues, err := Validate(tmpl, WithDescriptor(d))
	require.NoError(t, err)
	text := issueStrings(issues)

	assert.Contains(t, text, `[ERROR] workbook: descriptor rule names missing sheet "Attendance"`)
	assert.Contains(t, text, "[WARN] Notes: no header or footer found")
	assert.Contains(t, text, "[WARN] Quiz: no header row found, students start at row 6")
	assert.Contains(t, text, "[WARN] Gradebook: rows: fixed is ignored on the primary sheet")
	assert.Contains(t, text, "[WARN] Gradebook!H10: formula =[1]Rates!A1*2 will be copied verbatim")
	assert.Contains(t, text, "[WARN] workbook: no sheet named [MidTerm MET Midterm]")
}

func TestValidationIssue_String(t *testing.T) {
	assert.Equal(t, "[ERROR] S!B2: bad", ValidationIssue{CellRef: NewCellRef("S", 2, 2), Message: "bad"}.String())
	assert.Equal(t, "[WARN] S: odd", ValidationIssue{Severity: SeverityWarning, CellRef: CellRef{Sheet: "S"}, Message: "odd"}.String())
}
