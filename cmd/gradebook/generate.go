package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/javajack/gradebook"
)

func newGenerateCmd() *cobra.Command {
	var (
		templatePath string
		module       string
		classNames   []string
		selectExpr   string
		workers      int
		outputPath   string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build a gradebook per class and package them into a zip archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			template, err := readFile(templatePath, "template")
			if err != nil {
				return err
			}
			students, err := loadRoster()
			if err != nil {
				return err
			}
			students, err = gradebook.SelectStudents(students, selectExpr)
			if err != nil {
				return err
			}
			classes := gradebook.SelectClasses(gradebook.GroupByClass(students), classNames)
			if len(classes) == 0 {
				return fmt.Errorf("no classes to generate")
			}

			opts, err := processorOptions()
			if err != nil {
				return err
			}
			opts = append(opts, gradebook.WithWorkers(workers))
			p := gradebook.NewProcessor(opts...)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			results, batchErr := p.ProcessBatch(ctx, template, classes, module)

			var buf bytes.Buffer
			written, err := gradebook.WriteArchive(&buf, results)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("write archive: %w", err)
			}
			log.Info().
				Str("archive", outputPath).
				Int("classes", written).
				Int("failed", len(results)-written).
				Msg("archive written")

			if batchErr != nil {
				return fmt.Errorf("%d of %d classes failed: %w", len(results)-written, len(results), batchErr)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&templatePath, "template", "", "Gradebook template (xlsx)")
	cmd.Flags().StringVar(&module, "module", "", "Module name written into the title, e.g. \"MODULE 2\"")
	cmd.Flags().StringSliceVar(&classNames, "class", nil, "Classes to generate (default: all)")
	cmd.Flags().StringVar(&selectExpr, "select", "", "Expression selecting roster rows, e.g. 'Advisor != \"\"'")
	cmd.Flags().IntVar(&workers, "workers", cfg.Workers, "Classes processed in parallel")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "Gradebooks.zip", "Output archive")
	addTemplateFlags(cmd)
	addRosterFlags(cmd)
	return cmd
}
