package gradebook_test

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/javajack/gradebook"
)

// exampleTemplate returns a one-sheet template with room for three students.
func exampleTemplate() []byte {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", "Gradebook")
	f.SetCellStr("Gradebook", "A1", "GRADEBOOK - MODULE")
	f.SetCellStr("Gradebook", "A2", "Advisor:")
	f.SetSheetRow("Gradebook", "A5", &[]string{"No", "Student Number", "Name", "Surname", "Score"})
	f.SetCellStr("Gradebook", "A9", "Class average")
	f.SetCellFormula("Gradebook", "E9", "AVERAGE(E6:E8)")
	buf, _ := f.WriteToBuffer()
	return buf.Bytes()
}

func ExampleProcessor_Process() {
	students := []gradebook.Student{
		{Class: "A1.01", No: "1001", Name: "Ada", Surname: "Lovelace", Advisor: "Jane Doe"},
		{Class: "A1.01", No: "1002", Name: "Alan", Surname: "Turing", Advisor: "Jane Doe"},
		{Class: "A1.01", No: "1003", Name: "Grace", Surname: "Hopper", Advisor: "Jane Doe"},
		{Class: "A1.01", No: "1004", Name: "Edsger", Surname: "Dijkstra", Advisor: "Jane Doe"},
	}

	p := gradebook.NewProcessor(gradebook.WithStrategy(gradebook.InsertAtSafeOffset))
	out, err := p.Process(context.Background(), exampleTemplate(), "A1.01", students, "MODULE 3")
	if err != nil {
		fmt.Println(err)
		return
	}

	sheet := out.Report.Sheets[0]
	fmt.Println(sheet.Sheet, sheet.Region, sheet.Delta)

	f, _ := excelize.OpenReader(bytes.NewReader(out.Full))
	defer f.Close()
	title, _ := f.GetCellValue("A1.01", "A1")
	last, _ := f.GetCellValue("A1.01", "C9")
	avg, _ := f.GetCellFormula("A1.01", "E10")
	fmt.Println(title)
	fmt.Println(last)
	fmt.Println(avg)
	// Output:
	// A1.01 rows 6-8 (3, footer) 1
	// A1.01 GRADEBOOK - MODULE 3
	// Edsger
	// AVERAGE(E6:E9)
}
