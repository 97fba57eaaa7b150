package cmd

import (
	"errors"
	"testing"

	kerrors "github.com/PolarWolf314/envcipher/internal/errors"
)

// TestRunCommand contains integration tests for `envcipher run`.
func TestRunCommand(t *testing.T) {
	t.Run("InjectsDecryptedVariables", testRunInjectsDecryptedVariables)
	t.Run("PassesExitCode", testRunPassesExitCode)
	t.Run("NoCommand", testRunNoCommand)
}

func testRunInjectsDecryptedVariables(t *testing.T) {
	env := setupTestEnvironment(t)
	env.writeEnv(t, sampleEnv)

	if output, err := runCLI(t, "init"); err != nil {
		t.Fatalf("init failed: %v\nOutput: %s", err, output)
	}
	if output, err := runCLI(t, "lock"); err != nil {
		t.Fatalf("lock failed: %v\nOutput: %s", err, output)
	}
	locked := env.readEnv(t)

	output, err := runCLI(t, "run", "--", "sh", "-c", `test "$API_KEY" = sk-test-123`)
	if err != nil {
		t.Fatalf("run failed: %v\nOutput: %s", err, output)
	}
	if got := env.readEnv(t); got != locked {
		t.Errorf("run modified the file on disk")
	}
}

func testRunPassesExitCode(t *testing.T) {
	env := setupTestEnvironment(t)
	env.writeEnv(t, sampleEnv)

	_, err := runCLI(t, "run", "--", "sh", "-c", "exit 7")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Expected ExitError, got %v", err)
	}
	if exitErr.Code != 7 {
		t.Errorf("Expected exit code 7, got %d", exitErr.Code)
	}
}

func testRunNoCommand(t *testing.T) {
	env := setupTestEnvironment(t)
	env.writeEnv(t, sampleEnv)

	_, err := runCLI(t, "run")
	if !errors.Is(err, kerrors.ErrNoCommand) {
		t.Fatalf("Expected ErrNoCommand, got %v", err)
	}
}
