package configs

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/PolarWolf314/envcipher/internal/keystore"
)

func useTempSettings(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	restore := UseDirectories(filepath.Join(tempDir, "config"), filepath.Join(tempDir, "data"))
	t.Cleanup(restore)
	return tempDir
}

func TestSettingsPaths(t *testing.T) {
	tempDir := useTempSettings(t)

	if UserSettings.AuditLogPath != filepath.Join(tempDir, "data", "audit.jsonl") {
		t.Errorf("Unexpected audit log path %q", UserSettings.AuditLogPath)
	}
	if UserSettings.KeyringFileDir != filepath.Join(tempDir, "data", "keyring") {
		t.Errorf("Unexpected keyring dir %q", UserSettings.KeyringFileDir)
	}
	if UserConfigPath() != filepath.Join(tempDir, "config", "config.toml") {
		t.Errorf("Unexpected config path %q", UserConfigPath())
	}
}

func TestSaveAndLoadUserConfig(t *testing.T) {
	useTempSettings(t)

	config := &UserConfig{
		Keystore: KeystoreConfig{
			Service:  "envcipher-test",
			Backends: []string{"file"},
			FileDir:  "/tmp/keyring",
		},
		Editor: EditorConfig{Command: "code --wait"},
	}

	if err := SaveUserConfig(config); err != nil {
		t.Fatalf("SaveUserConfig failed: %v", err)
	}

	loaded, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}

	if !reflect.DeepEqual(config, loaded) {
		t.Errorf("Expected %+v, got %+v", config, loaded)
	}
}

func TestLoadUserConfigNonExistent(t *testing.T) {
	useTempSettings(t)

	config, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}
	if config.Keystore.Service != "" || len(config.Keystore.Backends) != 0 || config.Editor.Command != "" {
		t.Errorf("Expected zero config, got %+v", config)
	}
}

func TestLoadUserConfigMalformed(t *testing.T) {
	useTempSettings(t)

	if err := os.MkdirAll(UserSettings.UserConfigsPath, 0700); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	// #nosec G306 -- test fixture
	if err := os.WriteFile(UserConfigPath(), []byte("[keystore\nservice = "), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadUserConfig(); err == nil {
		t.Error("Expected error for malformed config")
	}
}

func TestKeyringConfigDefaults(t *testing.T) {
	useTempSettings(t)

	cfg := (&UserConfig{}).KeyringConfig()
	if cfg.ServiceName != keystore.DefaultServiceName {
		t.Errorf("Expected service %q, got %q", keystore.DefaultServiceName, cfg.ServiceName)
	}
	if cfg.FileDir != UserSettings.KeyringFileDir {
		t.Errorf("Expected file dir %q, got %q", UserSettings.KeyringFileDir, cfg.FileDir)
	}
	if len(cfg.Backends) != 0 {
		t.Errorf("Expected no backend restriction, got %v", cfg.Backends)
	}
}

func TestKeyringConfigExpandsHome(t *testing.T) {
	useTempSettings(t)
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	config := &UserConfig{Keystore: KeystoreConfig{FileDir: "~/secrets/ring"}}
	cfg := config.KeyringConfig()

	if cfg.FileDir != filepath.Join(home, "secrets", "ring") {
		t.Errorf("Expected home to be expanded, got %q", cfg.FileDir)
	}
	if strings.Contains(cfg.FileDir, "~") {
		t.Errorf("Tilde left in path %q", cfg.FileDir)
	}
}
