package cmd

import (
	"fmt"

	logger "github.com/PolarWolf314/envcipher/internal/logging"
	"github.com/PolarWolf314/envcipher/internal/workflows"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	// workflowCommon supplies the collaborators handed to every workflow.
	// Tests replace it to inject an in-memory store and a bounded resolver.
	workflowCommon = defaultWorkflowCommon

	EnvcipherCmd = &cobra.Command{
		Use:   "envcipher",
		Short: "Encrypt .env files with a key kept in your OS keychain",
		Long: `envcipher encrypts a project's .env file as a single authenticated blob.

The 256-bit key never touches the repository. It lives in the operating
system's credential store (macOS Keychain, Secret Service, Windows Credential
Manager, or an encrypted file for headless machines) under an identity
derived from the project directory.

Typical workflow:
  envcipher init      create .env and a key for this project
  envcipher lock      encrypt .env in place before committing
  envcipher unlock    decrypt .env in place
  envcipher edit      edit the encrypted .env without leaving plaintext behind
  envcipher run -- <command>
                      run a command with the decrypted variables`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing envcipher command with verbose=%t, debug=%t", verbose, debug)
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println()
			banner := figure.NewColorFigure("envcipher", "small", "green", true)
			banner.Print()
			fmt.Println()
			fmt.Println(color.CyanString("→") + " Run " + color.YellowString("envcipher --help") + " to see available commands")
		},
	}
)

func init() {
	EnvcipherCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	EnvcipherCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	EnvcipherCmd.AddCommand(initCmd)
	EnvcipherCmd.AddCommand(lockCmd)
	EnvcipherCmd.AddCommand(unlockCmd)
	EnvcipherCmd.AddCommand(statusCmd)
	EnvcipherCmd.AddCommand(editCmd)
	EnvcipherCmd.AddCommand(runCmd)
	EnvcipherCmd.AddCommand(exportKeyCmd)
	EnvcipherCmd.AddCommand(importKeyCmd)
	EnvcipherCmd.AddCommand(migrateCmd)
}

func defaultWorkflowCommon() workflows.Common {
	return workflows.Common{}
}

// Helper functions for testing

// GetEnvcipherCmd returns the root command for testing.
func GetEnvcipherCmd() *cobra.Command {
	return EnvcipherCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	workflowCommon = defaultWorkflowCommon
	resetStatusCommandState()
	resetImportKeyCommandState()
}

// SetVerbose sets the verbose flag for testing.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing.
func SetDebug(d bool) {
	debug = d
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}

// SetWorkflowCommon replaces the collaborators passed to workflows for testing.
func SetWorkflowCommon(c workflows.Common) {
	workflowCommon = func() workflows.Common { return c }
}
