package gradebook

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRewrite_PrimarySheet(t *testing.T) {
	wb := testWorkbook(t, sheetSpec{name: "Gradebook", capacity: 3}, sheetSpec{name: "MidTerm", capacity: 3})
	f := wb.File()
	boldBefore, _ := f.GetCellStyle("Gradebook", "A1")

	name := Rewrite(wb, 0, "Gradebook", Header{Class: "A1.01", Module: "MODULE 3", Advisor: "Jane Doe"}, zerolog.Nop())
	assert.Equal(t, "A1.01", name)
	assert.Equal(t, []string{"A1.01", "MidTerm"}, wb.Sheets())

	title, _ := f.GetCellValue("A1.01", "A1")
	assert.Equal(t, "A1.01 GRADEBOOK - MODULE 3", title)
	advisor, _ := f.GetCellValue("A1.01", "A2")
	assert.Equal(t, "Advisor: Jane Doe", advisor)

	boldAfter, _ := f.GetCellStyle("A1.01", "A1")
	assert.Equal(t, boldBefore, boldAfter, "style untouched")
}

func TestRewrite_RetargetsReferences(t *testing.T) {
	wb := testWorkbook(t, sheetSpec{name: "Gradebook", capacity: 3}, sheetSpec{name: "MidTerm", capacity: 3})
	f := wb.File()
	require.NoError(t, f.SetCellFormula("MidTerm", "C6", "Gradebook!C6*2"))
	require.NoError(t, f.SetCellFormula("MidTerm", "H2", `IF(Gradebook!A1="Gradebook!A1",1,0)`))
	require.NoError(t, f.SetCellFormula("Gradebook", "H2", "MidTerm!C6+Gradebook!C6"))
	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{Name: "Numbers", RefersTo: "Gradebook!$B$6:$B$8"}))

	name := Rewrite(wb, 0, "Gradebook", Header{Class: "A1.01", Module: "MODULE 3"}, zerolog.Nop())
	require.Equal(t, "A1.01", name)

	formula, _ := f.GetCellFormula("MidTerm", "C6")
	assert.Equal(t, "'A1.01'!C6*2", formula)
	formula, _ = f.GetCellFormula("MidTerm", "H2")
	assert.Equal(t, `IF('A1.01'!A1="Gradebook!A1",1,0)`, formula, "string literals untouched")
	formula, _ = f.GetCellFormula("A1.01", "H2")
	assert.Equal(t, "MidTerm!C6+'A1.01'!C6", formula)

	names := f.GetDefinedName()
	require.Len(t, names, 1)
	assert.Equal(t, "'A1.01'!$B$6:$B$8", names[0].RefersTo)
}

func TestRewrite_SecondarySheetKeepsName(t *testing.T) {
	wb := testWorkbook(t, sheetSpec{name: "Gradebook", capacity: 3}, sheetSpec{name: "MidTerm", capacity: 3})

	name := Rewrite(wb, 1, "MidTerm", Header{Class: "A1.01", Module: "MODULE 3"}, zerolog.Nop())
	assert.Equal(t, "MidTerm", name)

	title, _ := wb.File().GetCellValue("MidTerm", "A1")
	assert.Equal(t, "A1.01 GRADEBOOK - MODULE 3", title)
}

func TestRewrite_EmptyAdvisor(t *testing.T) {
	wb := testWorkbook(t, sheetSpec{name: "Gradebook", capacity: 3})

	Rewrite(wb, 0, "Gradebook", Header{Class: "B2", Module: "MODULE 1"}, zerolog.Nop())
	advisor, _ := wb.File().GetCellValue("B2", "A2")
	assert.Equal(t, "Advisor: ", advisor)
}

func TestRewrite_IllegalAndDuplicateTitles(t *testing.T) {
	t.Run("illegal characters stripped", func(t *testing.T) {
		wb := testWorkbook(t, sheetSpec{name: "Gradebook", capacity: 3})
		assert.Equal(t, "12A", Rewrite(wb, 0, "Gradebook", Header{Class: "12/A?"}, zerolog.Nop()))
	})

	t.Run("nothing left", func(t *testing.T) {
		wb := testWorkbook(t, sheetSpec{name: "Gradebook", capacity: 3})
		assert.Equal(t, "Gradebook", Rewrite(wb, 0, "Gradebook", Header{Class: "[*]"}, zerolog.Nop()))
	})

	t.Run("duplicate title", func(t *testing.T) {
		wb := testWorkbook(t, sheetSpec{name: "Gradebook", capacity: 3}, sheetSpec{name: "MidTerm", capacity: 3})
		assert.Equal(t, "Gradebook", Rewrite(wb, 0, "Gradebook", Header{Class: "midterm"}, zerolog.Nop()))
		assert.Equal(t, []string{"Gradebook", "MidTerm"}, wb.Sheets())
	})
}

func TestRewrite_ScanBounds(t *testing.T) {
	wb := testWorkbook(t, sheetSpec{name: "Gradebook", capacity: 3})
	f := wb.File()
	require.NoError(t, f.SetCellStr("Gradebook", "T10", "Advisor: old"))
	require.NoError(t, f.SetCellStr("Gradebook", "U1", "Advisor: old"))
	require.NoError(t, f.SetCellStr("Gradebook", "A11", "GRADEBOOK MODULE"))
	require.NoError(t, f.SetCellStr("Gradebook", "B1", "gradebook - module"))

	Rewrite(wb, 1, "Gradebook", Header{Class: "C3", Module: "MODULE 2", Advisor: "Ali"}, zerolog.Nop())

	v, _ := f.GetCellValue("Gradebook", "T10")
	assert.Equal(t, "Advisor: Ali", v)
	v, _ = f.GetCellValue("Gradebook", "U1")
	assert.Equal(t, "Advisor: old", v, "column U is outside the header block")
	v, _ = f.GetCellValue("Gradebook", "A11")
	assert.Equal(t, "GRADEBOOK MODULE", v, "row 11 is outside the header block")
	v, _ = f.GetCellValue("Gradebook", "B1")
	assert.Equal(t, "gradebook - module", v, "title match is case-sensitive")
}
