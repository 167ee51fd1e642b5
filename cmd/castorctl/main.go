package main

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/castor-coop/credit-castor/internal/core/domain"
	"github.com/castor-coop/credit-castor/internal/core/services"
)

// castorctl works on scenario and timeline files on disk, without a server.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "castorctl",
		Short:         "Inspect and convert shared-housing scenario files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMigrateParamsCmd(),
		newExportCmd(),
		newImportCmd(),
		newValidateCmd(),
	)
	return root
}

func newMigrateParamsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "migrate-params <scenario.json>",
		Short: "Upgrade a scenario file to the current format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read scenario file: %w", err)
			}

			var raw map[string]any
			if err := json.Unmarshal(data, &raw); err != nil {
				return fmt.Errorf("failed to parse scenario file: %w", err)
			}

			migrated := services.NewMigrationService().MigrateScenarioFile(raw)

			out, err := json.MarshalIndent(migrated, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode migrated scenario: %w", err)
			}

			return writeOutput(cmd, output, out)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write result to file instead of stdout")
	return cmd
}

func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <scenario.json>",
		Short: "Export a scenario's event log as a versioned timeline file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := loadScenarioFile(args[0])
			if err != nil {
				return err
			}

			out, err := services.NewExportService().ExportTimeline(file.Events)
			if err != nil {
				return fmt.Errorf("failed to export timeline: %w", err)
			}

			return writeOutput(cmd, output, out)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write result to file instead of stdout")
	return cmd
}

func newImportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "import <timeline.json> <scenario.json>",
		Short: "Attach an exported timeline to a scenario file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			timelineData, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read timeline file: %w", err)
			}

			events, err := services.NewExportService().ImportTimeline(timelineData)
			if err != nil {
				return fmt.Errorf("failed to import timeline: %w", err)
			}

			file, err := loadScenarioFile(args[1])
			if err != nil {
				return err
			}
			file.Events = events

			out, err := services.NewExportService().ExportScenario(file)
			if err != nil {
				return fmt.Errorf("failed to encode scenario: %w", err)
			}

			return writeOutput(cmd, output, out)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write result to file instead of stdout")
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario.json>",
		Short: "Check a scenario's event log for chronology problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := loadScenarioFile(args[0])
			if err != nil {
				return err
			}

			fraisGeneraux := services.NewFraisGenerauxService()
			timeline := services.NewTimelineService(
				services.NewCalculationService(fraisGeneraux),
				services.NewProjectionService(),
			)

			warnings := timeline.ValidateChronology(file.Events)
			if len(warnings) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "OK: no problems found")
				return nil
			}

			for _, w := range warnings {
				fmt.Fprintln(cmd.OutOrStdout(), "WARNING:", w)
			}
			return fmt.Errorf("%d problem(s) found", len(warnings))
		},
	}
}

// loadScenarioFile reads a scenario file from disk, migrating older formats
// on the fly.
func loadScenarioFile(path string) (domain.ScenarioFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ScenarioFile{}, fmt.Errorf("failed to read scenario file: %w", err)
	}

	file, err := services.NewExportService().ImportScenario(data, services.NewMigrationService())
	if err != nil {
		return domain.ScenarioFile{}, fmt.Errorf("failed to parse scenario file: %w", err)
	}
	return file, nil
}

func writeOutput(cmd *cobra.Command, output string, data []byte) error {
	if output == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	return nil
}
