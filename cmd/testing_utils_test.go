package cmd

// Testing utilities shared between command tests: an isolated project,
// output capture and a CLI runner.

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/envcipher/internal/configs"
	"github.com/PolarWolf314/envcipher/internal/keystore"
	"github.com/PolarWolf314/envcipher/internal/project"
	"github.com/PolarWolf314/envcipher/internal/workflows"

	"github.com/99designs/keyring"
)

// testEnvironment is a project directory bounded by a .git marker, wired to
// an in-memory key store.
type testEnvironment struct {
	root  string
	dir   string
	store *keystore.Store
}

// setupTestEnvironment creates a project in a temporary directory, changes
// into it and points the commands at an in-memory key store. Everything is
// restored when the test ends.
func setupTestEnvironment(t *testing.T) *testEnvironment {
	t.Helper()

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}

	root, err := os.MkdirTemp("", "envcipher-cmd-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	// Resolve symlinks so paths compare equal to os.Getwd on macOS.
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	dir := filepath.Join(root, "proj")
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0755); err != nil {
		t.Fatalf("Failed to create project directory: %v", err)
	}

	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change to project directory: %v", err)
	}

	restoreDirs := configs.UseDirectories(filepath.Join(root, "config"), filepath.Join(root, "data"))
	store := keystore.New(keystore.NewKeyringBackend(keyring.NewArrayKeyring(nil)))

	ResetGlobalState()
	SetWorkflowCommon(workflows.Common{
		Store: store,
		Resolver: &project.Resolver{
			FileName:       project.EnvFileName,
			BoundaryMarker: project.BoundaryMarker,
			HomeDir:        root,
		},
	})

	t.Cleanup(func() {
		ResetGlobalState()
		restoreDirs()
		if err := os.Chdir(originalWd); err != nil {
			t.Errorf("Failed to change to original directory: %v", err)
		}
		os.RemoveAll(root)
	})

	return &testEnvironment{root: root, dir: dir, store: store}
}

func (e *testEnvironment) envPath() string {
	return filepath.Join(e.dir, project.EnvFileName)
}

func (e *testEnvironment) writeEnv(t *testing.T, content string) {
	t.Helper()
	if err := os.WriteFile(e.envPath(), []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
}

func (e *testEnvironment) readEnv(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(e.envPath())
	if err != nil {
		t.Fatalf("Failed to read .env: %v", err)
	}
	return string(data)
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stdoutChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stderrChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}

// runCLI executes the root command with args and returns everything it
// printed.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return captureOutput(func() error {
		root := GetEnvcipherCmd()
		root.SetArgs(args)
		return root.Execute()
	})
}
