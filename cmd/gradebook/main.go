// Package main provides the gradebook batch CLI.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/javajack/gradebook"
	"github.com/javajack/gradebook/internal/config"
)

var (
	cfg *config.Config
	log zerolog.Logger

	logLevel       string
	logFormat      string
	descriptorPath string
	strategyName   string
)

func main() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "gradebook",
		Short: "Generate per-class gradebooks from an xlsx template",
		Long: `gradebook fills a master gradebook template once per class of a roster,
resizing the student table of every sheet to the class size, and packages the
gradebooks and their checker copies into a zip archive.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(logLevel, logFormat, os.Stderr)
			if err != nil {
				return err
			}
			log = l
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", cfg.LogFormat, "Log format: console or json")

	rootCmd.AddCommand(newGenerateCmd(), newDescribeCmd(), newClassesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addTemplateFlags registers the flags shared by commands reading a template.
func addTemplateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&descriptorPath, "descriptor", "", "Template descriptor (YAML)")
	cmd.Flags().StringVar(&strategyName, "strategy", cfg.Strategy, "Row insertion strategy: boundary or safe-offset")
}

// processorOptions builds the library options from the shared flags.
func processorOptions() ([]gradebook.Option, error) {
	strategy, err := gradebook.ParseStrategy(strategyName)
	if err != nil {
		return nil, err
	}
	opts := []gradebook.Option{
		gradebook.WithLogger(log),
		gradebook.WithStrategy(strategy),
		gradebook.WithAdvisorPlaceholder(cfg.AdvisorPlaceholder),
	}
	if descriptorPath != "" {
		d, err := gradebook.LoadDescriptorFile(descriptorPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, gradebook.WithDescriptor(d))
	}
	return opts, nil
}

func readFile(path, what string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("--%s is required", what)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", what, err)
	}
	return data, nil
}
