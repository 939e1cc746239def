package gradebook

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rosterHeader = []string{"Class", "No", "Name", "Surname", "Advisor"}

func TestLoadRoster(t *testing.T) {
	data := rosterBytes(t, rosterHeader, [][]string{
		{"A1.01", "1001", "Ayşe", "Yılmaz", "Jane Doe"},
		{"A1.02", "1002", "Mehmet", "Kaya", "John Roe"},
		{"A1.01", "1003", "Zeynep", "Demir", "Jane Doe"},
		{"", "1004", "No", "Class", ""},
	})

	students, err := LoadRoster(bytes.NewReader(data), "", DefaultColumnMap())
	require.NoError(t, err)
	require.Len(t, students, 3, "rows without a class are skipped")
	assert.Equal(t, Student{Class: "A1.01", No: "1001", Name: "Ayşe", Surname: "Yılmaz", Advisor: "Jane Doe"}, students[0])

	groups := GroupByClass(students)
	require.Len(t, groups, 2)
	assert.Equal(t, "A1.01", groups[0].Class)
	assert.Len(t, groups[0].Students, 2)
	assert.Equal(t, "1003", groups[0].Students[1].No)
	assert.Equal(t, "John Roe", groups[1].Advisor())
}

func TestLoadRoster_ColumnMapping(t *testing.T) {
	data := rosterBytes(t, []string{"Öğrenci No", "Ad", "Soyad", "Sınıf"}, [][]string{
		{"7", "Ali", "Can", "B2"},
	})

	cm := ColumnMap{Class: "sınıf", No: "Öğrenci No", Name: "Ad", Surname: "Soyad", Advisor: "Danışman"}
	students, err := LoadRoster(bytes.NewReader(data), "Sheet1", cm)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "B2", students[0].Class)
	assert.Empty(t, students[0].Advisor, "missing advisor column is not an error")
}

func TestLoadRoster_MissingColumn(t *testing.T) {
	data := rosterBytes(t, []string{"Class", "No", "Name"}, [][]string{{"A", "1", "X"}})

	_, err := LoadRoster(bytes.NewReader(data), "", DefaultColumnMap())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "Surname")
}

func TestLoadRoster_Errors(t *testing.T) {
	_, err := LoadRoster(bytes.NewReader([]byte("not a workbook")), "", DefaultColumnMap())
	assert.Error(t, err)

	data := rosterBytes(t, rosterHeader, nil)
	_, err = LoadRoster(bytes.NewReader(data), "Missing", DefaultColumnMap())
	assert.Error(t, err)
}

func TestSelectClasses(t *testing.T) {
	groups := GroupByClass(append(makeStudents("A", 2), makeStudents("B", 1)...))

	assert.Len(t, SelectClasses(groups, nil), 2)
	picked := SelectClasses(groups, []string{"B", "Z"})
	require.Len(t, picked, 1)
	assert.Equal(t, "B", picked[0].Class)
}

func TestSelectStudents(t *testing.T) {
	students := append(makeStudents("A", 3), Student{Class: "B", No: "9", Name: "Eve"})

	got, err := SelectStudents(students, `Class == "A" && Name != "Name2"`)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Name3", got[1].Name)

	got, err = SelectStudents(students, "")
	require.NoError(t, err)
	assert.Len(t, got, 4)

	_, err = SelectStudents(students, "Class ==")
	assert.Error(t, err)

	_, err = SelectStudents(students, `Name + 1`)
	assert.Error(t, err, "non-boolean result")
}
