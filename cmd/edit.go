package cmd

import (
	"fmt"

	"github.com/PolarWolf314/envcipher/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Opens the decrypted .env in your editor and re-encrypts it on save",
	Long: `Decrypts .env into a private temporary file, opens it in $EDITOR
($VISUAL, the [editor] command from the user config, vim or nano as
fallbacks) and encrypts the result back into .env when the editor exits.

The file is only rewritten when its content changed. The temporary
plaintext copy is removed afterwards.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting edit command")

		result, err := workflows.Edit(cmd.Context(), workflows.EditOptions{Common: workflowCommon()})
		if err != nil {
			Logger.Errorf("Edit failed: %v", err)
			fmt.Println(failureMessage(err))
			return reported(err)
		}

		if !result.Changed {
			fmt.Println(color.CyanString("→") + " No changes made; " + color.YellowString(result.EnvPath) + " left untouched")
			return nil
		}
		Logger.Infof("Re-encrypted %s with key %s", result.EnvPath, result.KeyID)

		fmt.Println(color.GreenString("✓") + " " + color.YellowString(result.EnvPath) + " updated and encrypted")
		return nil
	},
}
