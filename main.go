package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/envcipher/cmd"

	"github.com/awnumar/memguard"
)

func main() {
	// Wipe key material if the process is interrupted mid-operation.
	memguard.CatchInterrupt()

	err := cmd.EnvcipherCmd.Execute()
	memguard.Purge()

	if err == nil {
		return
	}

	var exitErr *cmd.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}
	if !cmd.Reported(err) {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}
