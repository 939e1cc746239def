package gradebook

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// sheetSpec describes one sheet of a generated gradebook template.
//
// Layout: A1 title, A2 advisor line, header in row 5 (A5:G5), capacity
// bordered student rows from row 6 with G = AVERAGE(E:F), then a footer row
// with "TOTAL" in A and the column average in G.
type sheetSpec struct {
	name     string
	capacity int
	table    string // declare a table over the header and student rows
	noHeader bool   // leave row 5 empty
	noFooter bool   // leave the footer row empty
}

func (s sheetSpec) footerRow() int { return 6 + s.capacity }
func (s sheetSpec) lastRow() int   { return 5 + s.capacity }

var testHeader = []string{"No", "Student Number", "Name", "Surname", "Midterm", "Final", "Average"}

// newTemplate builds a template workbook in memory. The caller owns the file.
func newTemplate(t *testing.T, sheets ...sheetSpec) *excelize.File {
	t.Helper()
	f := excelize.NewFile()

	border, err := f.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Font: &excelize.Font{Family: "Calibri", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	require.NoError(t, err)
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	require.NoError(t, err)

	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", s.name))
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		fillSheet(t, f, s, border, bold)
	}
	return f
}

func fillSheet(t *testing.T, f *excelize.File, s sheetSpec, border, bold int) {
	t.Helper()
	name := s.name
	require.NoError(t, f.SetCellStr(name, "A1", "GRADEBOOK - MODULE"))
	require.NoError(t, f.SetCellStyle(name, "A1", "A1", bold))
	require.NoError(t, f.SetCellStr(name, "A2", "Advisor: "))

	if !s.noHeader {
		for col, h := range testHeader {
			require.NoError(t, f.SetCellStr(name, cellName(col+1, 5), h))
		}
		require.NoError(t, f.SetCellStyle(name, "A5", "G5", bold))
	}

	for row := 6; row <= s.lastRow(); row++ {
		require.NoError(t, f.SetCellStyle(name, cellName(1, row), cellName(7, row), border))
		require.NoError(t, f.SetCellFormula(name, cellName(7, row), fmt.Sprintf("AVERAGE(E%d:F%d)", row, row)))
	}

	if !s.noFooter {
		footer := s.footerRow()
		require.NoError(t, f.SetCellStr(name, cellName(1, footer), "TOTAL"))
		require.NoError(t, f.SetCellFormula(name, cellName(7, footer), fmt.Sprintf("AVERAGE(G6:G%d)", s.lastRow())))
		require.NoError(t, f.SetCellStyle(name, cellName(1, footer), cellName(7, footer), bold))
	}

	if s.table != "" {
		require.NoError(t, f.AddTable(name, &excelize.Table{
			Range:          fmt.Sprintf("A5:G%d", s.lastRow()),
			Name:           s.table,
			StyleName:      "TableStyleMedium2",
			ShowRowStripes: boolPtr(true),
		}))
	}
}

func boolPtr(b bool) *bool { return &b }

// templateBytes serializes a template and closes it.
func templateBytes(t *testing.T, f *excelize.File) []byte {
	t.Helper()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return buf.Bytes()
}

// testWorkbook wraps an in-memory template for direct engine calls.
func testWorkbook(t *testing.T, sheets ...sheetSpec) *Workbook {
	t.Helper()
	wb := NewWorkbook(newTemplate(t, sheets...))
	t.Cleanup(func() { wb.Close() })
	return wb
}

// openOutput parses produced workbook bytes.
func openOutput(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	require.NotEmpty(t, data)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

// makeStudents returns n students of one class, numbered from 1001.
func makeStudents(class string, n int) []Student {
	students := make([]Student, n)
	for i := range students {
		students[i] = Student{
			Class:   class,
			No:      fmt.Sprintf("%d", 1001+i),
			Name:    fmt.Sprintf("Name%d", i+1),
			Surname: fmt.Sprintf("Surname%d", i+1),
			Advisor: "Jane Doe",
		}
	}
	return students
}

// rosterBytes builds a roster workbook from a header and rows.
func rosterBytes(t *testing.T, header []string, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	for col, h := range header {
		require.NoError(t, f.SetCellStr("Sheet1", cellName(col+1, 1), h))
	}
	for i, row := range rows {
		for col, v := range row {
			require.NoError(t, f.SetCellStr("Sheet1", cellName(col+1, i+2), v))
		}
	}
	return templateBytes(t, f)
}
