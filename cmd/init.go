package cmd

import (
	"github.com/PolarWolf314/envcipher/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Creates a key for this project and stores it in your OS keychain",
	Long: `Generates a 256-bit key for the project and stores it in the OS credential
store under an identity derived from the project directory.

If no .env file exists one is created in the current directory. A
.envcipher.toml marker is written so the directory is recognised later.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")
		spinner, cleanup := startSpinner("Initializing envcipher...", verbose)
		defer cleanup()

		result, err := workflows.Init(cmd.Context(), workflows.InitOptions{Common: workflowCommon()})
		if err != nil {
			Logger.Errorf("Init failed: %v", err)
			spinner.FinalMSG = failureMessage(err)
			return reported(err)
		}
		Logger.Infof("Key %s bound to %s", result.KeyID, result.ProjectDir)

		finalMessage := color.GreenString("✓") + " envcipher initialized for " + color.YellowString(result.ProjectDir) + "\n" +
			color.CyanString("→") + " Key ID: " + color.CyanString(result.KeyID) + "\n"
		if result.CreatedEnv {
			finalMessage += color.CyanString("→") + " Created " + color.YellowString(result.EnvPath) + "\n"
		}
		if result.ReusedKey {
			finalMessage += color.YellowString("⚠") + " Reusing the key already stored for this project\n"
		}
		finalMessage += color.CyanString("→") + " Run " + color.YellowString("envcipher lock") + " to encrypt " + color.YellowString(".env")

		spinner.FinalMSG = finalMessage
		return nil
	},
}
