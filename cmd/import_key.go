package cmd

import (
	"bytes"
	"fmt"

	"github.com/PolarWolf314/envcipher/internal/utils"
	"github.com/PolarWolf314/envcipher/internal/workflows"

	"github.com/awnumar/memguard"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var importFromStdin bool

func init() {
	importKeyCmd.Flags().BoolVar(&importFromStdin, "stdin", false, "read the key from stdin instead of prompting")
}

func resetImportKeyCommandState() {
	importFromStdin = false
}

var importKeyCmd = &cobra.Command{
	Use:   "import-key [KEY]",
	Short: "Stores a key exported on another machine for this project",
	Long: `Stores a base64 key produced by export-key in the OS credential store,
bound to this project. Without an argument the key is read with hidden
input, or from stdin when it is piped or --stdin is given.

Passing the key as an argument leaves it in your shell history.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting import-key command")

		key, err := readImportedKey(args)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read key: %v", err)
		}
		defer memguard.WipeBytes(key)

		spinner, cleanup := startSpinner("Importing key...", verbose)
		defer cleanup()

		result, err := workflows.ImportKey(cmd.Context(), workflows.ImportKeyOptions{
			Common: workflowCommon(),
			Key:    key,
		})
		if err != nil {
			Logger.Errorf("Import failed: %v", err)
			spinner.FinalMSG = failureMessage(err)
			return reported(err)
		}

		finalMessage := color.GreenString("✓") + " Key " + color.CyanString(result.KeyID) + " stored for " + color.YellowString(result.ProjectDir)
		if result.Replaced {
			finalMessage += "\n" + color.YellowString("⚠") + " A different key was stored for this project and has been replaced"
		}
		finalMessage += "\n" + color.CyanString("→") + " Run " + color.YellowString("envcipher unlock") + " to decrypt " + color.YellowString(".env")

		spinner.FinalMSG = finalMessage
		return nil
	},
}

// readImportedKey returns the key material in a buffer the caller wipes.
func readImportedKey(args []string) ([]byte, error) {
	if len(args) == 1 {
		Logger.Warnf("Key passed as an argument may be recorded in your shell history")
		return []byte(args[0]), nil
	}

	var raw []byte
	var err error
	if importFromStdin || !utils.IsTerminal() {
		Logger.Debugf("Reading key from stdin")
		raw, err = utils.ReadStdin()
	} else {
		raw, err = utils.ReadSecret("Paste the exported key: ")
	}
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		memguard.WipeBytes(raw)
		return nil, fmt.Errorf("no key provided")
	}
	return raw, nil
}
