package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javajack/gradebook"
)

var (
	rosterPath  string
	rosterSheet string
	columns     gradebook.ColumnMap
)

// addRosterFlags registers the roster file and column mapping flags.
func addRosterFlags(cmd *cobra.Command) {
	d := gradebook.DefaultColumnMap()
	cmd.Flags().StringVar(&rosterPath, "roster", "", "Roster workbook (xlsx), header in row 1")
	cmd.Flags().StringVar(&rosterSheet, "roster-sheet", "", "Roster sheet (default: first sheet)")
	cmd.Flags().StringVar(&columns.Class, "col-class", d.Class, "Roster column holding the class")
	cmd.Flags().StringVar(&columns.No, "col-no", d.No, "Roster column holding the student number")
	cmd.Flags().StringVar(&columns.Name, "col-name", d.Name, "Roster column holding the first name")
	cmd.Flags().StringVar(&columns.Surname, "col-surname", d.Surname, "Roster column holding the last name")
	cmd.Flags().StringVar(&columns.Advisor, "col-advisor", d.Advisor, "Roster column holding the advisor")
}

func loadRoster() ([]gradebook.Student, error) {
	data, err := readFile(rosterPath, "roster")
	if err != nil {
		return nil, err
	}
	return gradebook.LoadRoster(bytes.NewReader(data), rosterSheet, columns)
}

func newClassesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classes",
		Short: "List the classes of a roster with their size and advisor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			students, err := loadRoster()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range gradebook.GroupByClass(students) {
				fmt.Fprintf(out, "%s\t%d\t%s\n", c.Class, len(c.Students), c.Advisor())
			}
			return nil
		},
	}
	addRosterFlags(cmd)
	return cmd
}
