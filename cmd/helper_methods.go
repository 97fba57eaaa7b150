package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	kerrors "github.com/PolarWolf314/envcipher/internal/errors"
	"github.com/PolarWolf314/envcipher/internal/ui"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// failureMessage renders a workflow error for the user, with a hint where
// one exists.
func failureMessage(err error) string {
	red := color.RedString("✗")
	arrow := color.CyanString("→")

	switch {
	case errors.Is(err, kerrors.ErrNotInitialized):
		return red + " envcipher has not been initialized for this project\n" +
			arrow + " Run " + color.YellowString("envcipher init") + " first, or " +
			color.YellowString("envcipher import-key") + " if a teammate shared the key"
	case errors.Is(err, kerrors.ErrEnvNotFound):
		return red + " No " + color.YellowString(".env") + " file found in this project\n" +
			arrow + " Run " + color.YellowString("envcipher init") + " to create one"
	case errors.Is(err, kerrors.ErrAlreadyInitialized):
		return red + " envcipher has already been initialized in this directory\n" +
			arrow + " Run " + color.YellowString("envcipher status") + " to inspect it"
	case errors.Is(err, kerrors.ErrAuthenticationFailed):
		return red + " Could not decrypt " + color.YellowString(".env") +
			": the file was tampered with or was encrypted with a different key\n" +
			arrow + " If the project moved, import the original key with " + color.YellowString("envcipher import-key")
	case errors.Is(err, kerrors.ErrInvalidEnvelope):
		return red + " " + color.YellowString(".env") + " is not in the envcipher format\n" +
			color.RedString("Error: ") + err.Error()
	case errors.Is(err, kerrors.ErrNonUTF8Plaintext):
		return red + " Decrypted content is not valid UTF-8 text and was left untouched"
	case errors.Is(err, kerrors.ErrAlreadyEnciphered):
		return red + " " + color.YellowString(".env") + " is already encrypted\n" +
			arrow + " Run " + color.YellowString("envcipher edit") + " to change it"
	case errors.Is(err, kerrors.ErrNotEnciphered):
		return red + " " + color.YellowString(".env") + " is not encrypted\n" +
			arrow + " Run " + color.YellowString("envcipher lock") + " to encrypt it"
	case errors.Is(err, kerrors.ErrInvalidKeyLength), errors.Is(err, kerrors.ErrInvalidKeyEncoding):
		return red + " Invalid key: expected base64 of exactly 32 bytes\n" +
			color.RedString("Error: ") + err.Error() + "\n" +
			arrow + " If the stored key is damaged, replace it with " + color.YellowString("envcipher import-key")
	case errors.Is(err, kerrors.ErrKeyStoreAccess):
		return red + " Could not access the OS credential store\n" +
			color.RedString("Error: ") + err.Error() + "\n" +
			arrow + " On headless machines set " + color.YellowString("ENVCIPHER_KEYRING_BACKEND=file")
	case errors.Is(err, kerrors.ErrEditorFailed):
		return red + " Editor failed; " + color.YellowString(".env") + " was not changed\n" +
			color.RedString("Error: ") + err.Error()
	case errors.Is(err, kerrors.ErrNoCommand):
		return red + " No command given\n" +
			arrow + " Usage: " + color.YellowString("envcipher run -- <command> [args...]")
	default:
		return red + " " + err.Error()
	}
}

// reportedError marks an error whose message was already shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

// Reported reports whether a command already printed err, so main should
// only set the exit status.
func Reported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}
