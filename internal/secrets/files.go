package secrets

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultEnvFileMode is used when the target does not exist yet.
const defaultEnvFileMode os.FileMode = 0600

// ReadEnvFile returns the contents of the secrets file as text.
func ReadEnvFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// WriteEnvFile replaces the secrets file atomically: the content goes to a
// temp file in the same directory which is then renamed over the target.
// An existing file's permissions are kept.
func WriteEnvFile(path, contents string) error {
	mode := defaultEnvFileMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.WriteString(contents); err != nil {
		cleanup()
		return fmt.Errorf("failed to write temp file for %s: %w", path, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		cleanup()
		return fmt.Errorf("failed to set permissions on %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file for %s: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
