package utils

import (
	"fmt"
	"os"
	"runtime"

	"golang.org/x/term"
)

// ReadSecret prompts for a value without echoing input. It reads from stdin
// when stdin is a terminal and from /dev/tty (CON on Windows) otherwise.
// The caller owns the returned slice and should wipe it.
func ReadSecret(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		return readHidden(fd, prompt)
	}

	ttyPath := "/dev/tty"
	if runtime.GOOS == "windows" {
		ttyPath = "CON"
	}

	tty, err := os.Open(ttyPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s for input: %w", ttyPath, err)
	}
	defer tty.Close()

	fd = int(tty.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%s is not a terminal", ttyPath)
	}
	return readHidden(fd, prompt)
}

func readHidden(fd int, prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return secret, nil
}

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTerminal returns true if stdout is a terminal.
func IsStdoutTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
