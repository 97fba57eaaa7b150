package cmd

import (
	"fmt"

	"github.com/PolarWolf314/envcipher/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var unlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Decrypts the .env file in place",
	Long: `Decrypts the .env file in place, removing every layer of encryption.

Files that were encrypted more than once, or that mix encrypted lines with
plaintext, are recovered as far as the stored key allows. Lines that cannot
be decrypted are left exactly as they were.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting unlock command")
		spinner, cleanup := startSpinner("Decrypting .env...", verbose)
		defer cleanup()

		result, err := workflows.Unlock(cmd.Context(), workflows.UnlockOptions{Common: workflowCommon()})
		if err != nil {
			Logger.Errorf("Unlock failed: %v", err)
			spinner.FinalMSG = failureMessage(err)
			return reported(err)
		}
		Logger.Infof("Removed %d layer(s) from %s", result.Layers, result.EnvPath)

		if result.Layers == 0 {
			spinner.FinalMSG = color.RedString("✗") + " Nothing in " + color.YellowString(result.EnvPath) + " could be decrypted; the file was left untouched\n" +
				color.YellowString("⚠") + fmt.Sprintf(" %d encrypted line(s) do not match this project's key or are malformed", result.Preserved)
			return nil
		}

		finalMessage := color.GreenString("✓") + " " + color.YellowString(result.EnvPath) + " decrypted successfully!"
		if result.Layers > 1 {
			finalMessage += "\n" + color.CyanString("→") + fmt.Sprintf(" Removed %d layers of encryption", result.Layers)
		}
		if result.Preserved > 0 {
			finalMessage += "\n" + color.YellowString("⚠") +
				fmt.Sprintf(" %d encrypted line(s) could not be decrypted with this project's key and were kept as-is", result.Preserved)
		}
		if result.Exhausted {
			finalMessage += "\n" + color.YellowString("⚠") + " Stopped after the maximum number of layers; the file still contains encrypted content\n" +
				color.CyanString("→") + " Run " + color.YellowString("envcipher unlock") + " again to continue"
		}

		spinner.FinalMSG = finalMessage
		return nil
	},
}
