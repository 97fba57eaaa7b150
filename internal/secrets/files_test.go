package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestWriteEnvFile_CreatesWithPrivateMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")

	if err := WriteEnvFile(path, "FOO=bar\n"); err != nil {
		t.Fatalf("WriteEnvFile failed: %v", err)
	}

	got, err := ReadEnvFile(path)
	if err != nil {
		t.Fatalf("ReadEnvFile failed: %v", err)
	}
	if got != "FOO=bar\n" {
		t.Errorf("Expected contents %q, got %q", "FOO=bar\n", got)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Stat failed: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("Expected mode 0600, got %o", info.Mode().Perm())
		}
	}
}

func TestWriteEnvFile_PreservesMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on Windows")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	// #nosec G306 -- test fixture with deliberately relaxed permissions
	if err := os.WriteFile(path, []byte("OLD=1\n"), 0640); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if err := WriteEnvFile(path, "NEW=1\n"); err != nil {
		t.Fatalf("WriteEnvFile failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0640 {
		t.Errorf("Expected mode 0640 to be preserved, got %o", info.Mode().Perm())
	}
}

func TestWriteEnvFile_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")

	for i := 0; i < 3; i++ {
		if err := WriteEnvFile(path, "X=1\n"); err != nil {
			t.Fatalf("WriteEnvFile failed: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("Expected only .env, found %v", names)
	}
}

func TestReadEnvFile_Missing(t *testing.T) {
	_, err := ReadEnvFile(filepath.Join(t.TempDir(), ".env"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}
