package cmd

import (
	"github.com/PolarWolf314/envcipher/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Converts a legacy .envcipher.json marker to .envcipher.toml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting migrate command")
		spinner, cleanup := startSpinner("Migrating project marker...", verbose)
		defer cleanup()

		result, err := workflows.MigrateMarker(cmd.Context(), workflows.MigrateOptions{Common: workflowCommon()})
		if err != nil {
			Logger.Errorf("Migrate failed: %v", err)
			spinner.FinalMSG = failureMessage(err)
			return reported(err)
		}

		if !result.Migrated {
			spinner.FinalMSG = color.GreenString("✓") + " " + color.YellowString(result.MarkerPath) + " is already up to date"
			return nil
		}
		Logger.Infof("Legacy marker moved to %s", result.BackupPath)

		spinner.FinalMSG = color.GreenString("✓") + " Marker migrated to " + color.YellowString(result.MarkerPath) + "\n" +
			color.CyanString("→") + " The old marker was kept at " + color.YellowString(result.BackupPath)
		return nil
	},
}
