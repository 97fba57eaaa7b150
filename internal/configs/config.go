package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/envcipher/internal/keystore"
)

// UserConfig is the contents of the user config file.
type UserConfig struct {
	Keystore KeystoreConfig `toml:"keystore"`
	Editor   EditorConfig   `toml:"editor"`
}

// KeystoreConfig selects the credential backend.
type KeystoreConfig struct {
	Service  string   `toml:"service,omitempty"`
	Backends []string `toml:"backends,omitempty"`
	FileDir  string   `toml:"file_dir,omitempty"`
}

// EditorConfig overrides the editor used by edit.
type EditorConfig struct {
	Command string `toml:"command,omitempty"`
}

// UserConfigPath returns the location of the user config file.
func UserConfigPath() string {
	return filepath.Join(UserSettings.UserConfigsPath, "config.toml")
}

// LoadUserConfig loads the user configuration. A missing file yields the
// zero config.
func LoadUserConfig() (*UserConfig, error) {
	configPath := UserConfigPath()
	config := &UserConfig{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	return config, nil
}

// SaveUserConfig saves the user configuration to the config file.
func SaveUserConfig(config *UserConfig) error {
	if err := SaveTOML(UserConfigPath(), config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}
	return nil
}

// KeyringConfig resolves the keystore settings against defaults.
func (c *UserConfig) KeyringConfig() keystore.Config {
	cfg := keystore.Config{
		ServiceName: c.Keystore.Service,
		Backends:    c.Keystore.Backends,
		FileDir:     expandHome(c.Keystore.FileDir),
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = keystore.DefaultServiceName
	}
	if cfg.FileDir == "" {
		cfg.FileDir = UserSettings.KeyringFileDir
	}
	return cfg
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
