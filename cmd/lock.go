package cmd

import (
	"github.com/PolarWolf314/envcipher/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Encrypts the .env file in place",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting lock command")
		spinner, cleanup := startSpinner("Encrypting .env...", verbose)
		defer cleanup()

		result, err := workflows.Lock(cmd.Context(), workflows.LockOptions{Common: workflowCommon()})
		if err != nil {
			Logger.Errorf("Lock failed: %v", err)
			spinner.FinalMSG = failureMessage(err)
			return reported(err)
		}
		Logger.Infof("Locked %s with key %s", result.EnvPath, result.KeyID)

		finalMessage := ""
		if result.NestedWarning {
			finalMessage += color.YellowString("⚠") + " The file already contained encrypted lines; they are now nested one layer deeper\n" +
				color.CyanString("→") + " " + color.YellowString("envcipher unlock") + " will unwind every layer\n"
		}
		finalMessage += color.GreenString("✓") + " " + color.YellowString(result.EnvPath) + " encrypted successfully!\n" +
			color.CyanString("→") + " You can now safely commit it to version control"

		spinner.FinalMSG = finalMessage
		return nil
	},
}
