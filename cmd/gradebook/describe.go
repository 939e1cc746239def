package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javajack/gradebook"
)

func newDescribeCmd() *cobra.Command {
	var templatePath string
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Show the student region and tables detected on every template sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			template, err := readFile(templatePath, "template")
			if err != nil {
				return err
			}
			opts, err := processorOptions()
			if err != nil {
				return err
			}

			text, err := gradebook.Describe(template, opts...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, text)

			issues, err := gradebook.Validate(template, opts...)
			if err != nil {
				return err
			}
			for _, issue := range issues {
				fmt.Fprintln(out, issue)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&templatePath, "template", "", "Gradebook template (xlsx)")
	addTemplateFlags(cmd)
	return cmd
}
