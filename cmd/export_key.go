package cmd

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/envcipher/internal/utils"
	"github.com/PolarWolf314/envcipher/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var exportKeyCmd = &cobra.Command{
	Use:   "export-key",
	Short: "Prints the project key so it can be imported on another machine",
	Long: `Prints the project's key as base64. Share it only over a secure
channel; anyone holding it can decrypt the .env file.

When stdout is not a terminal only the key is written, so it can be piped:
  envcipher export-key | ssh other-host envcipher import-key --stdin`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting export-key command")

		result, err := workflows.ExportKey(cmd.Context(), workflows.ExportKeyOptions{Common: workflowCommon()})
		if err != nil {
			Logger.Errorf("Export failed: %v", err)
			fmt.Fprintln(os.Stderr, failureMessage(err))
			return reported(err)
		}

		if !utils.IsStdoutTerminal() {
			fmt.Println(result.Key)
			return nil
		}

		fmt.Println(color.YellowString("⚠") + " This key decrypts " + color.YellowString(result.ProjectDir) + "/.env. Treat it like a password.")
		fmt.Println()
		fmt.Println(result.Key)
		fmt.Println()
		fmt.Println(color.CyanString("→") + " Key ID: " + color.CyanString(result.KeyID))
		fmt.Println(color.CyanString("→") + " On the other machine run " + color.YellowString("envcipher import-key") + " inside the project")
		return nil
	},
}
