package cmd

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/envcipher/internal/workflows"

	"github.com/spf13/cobra"
)

// ExitError carries a child process exit status through cobra so main can
// exit with it.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command exited with status %d", e.Code)
}

var runCmd = &cobra.Command{
	Use:   "run -- <command> [args...]",
	Short: "Runs a command with the decrypted .env variables in its environment",
	Long: `Decrypts .env in memory and runs the given command with its variables
added to the current environment. The file on disk is not modified.

The command's exit status becomes envcipher's exit status.`,
	Example: `  envcipher run -- npm start
  envcipher run -- sh -c 'echo $DATABASE_URL'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting run command")
		Logger.Debugf("Command: %v", args)

		result, err := workflows.RunCommand(cmd.Context(), workflows.RunOptions{
			Common: workflowCommon(),
			Args:   args,
			Stdin:  os.Stdin,
			Stdout: os.Stdout,
			Stderr: os.Stderr,
		})
		if err != nil {
			Logger.Errorf("Run failed: %v", err)
			fmt.Fprintln(os.Stderr, failureMessage(err))
			return reported(err)
		}
		Logger.Infof("Injected %d variable(s); command exited with %d", result.Injected, result.ExitCode)

		if result.ExitCode != 0 {
			return &ExitError{Code: result.ExitCode}
		}
		return nil
	},
}

func init() {
	runCmd.Flags().SetInterspersed(false)
}
