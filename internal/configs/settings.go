package configs

import (
	"log"
	"os"
	"path/filepath"
)

// Settings holds the per-user paths envcipher reads and writes.
type Settings struct {
	UserConfigsPath string
	UserDataPath    string
	AuditLogPath    string
	KeyringFileDir  string
}

var UserSettings *Settings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(homeDir, ".config")
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	UserSettings = newSettings(filepath.Join(configDir, "envcipher"), filepath.Join(dataDir, "envcipher"))
}

func newSettings(configPath, dataPath string) *Settings {
	return &Settings{
		UserConfigsPath: configPath,
		UserDataPath:    dataPath,
		AuditLogPath:    filepath.Join(dataPath, "audit.jsonl"),
		KeyringFileDir:  filepath.Join(dataPath, "keyring"),
	}
}

// UseDirectories points every user path below configPath and dataPath.
// Tests use it to isolate from the real home directory. It returns a
// function restoring the previous settings.
func UseDirectories(configPath, dataPath string) func() {
	previous := UserSettings
	UserSettings = newSettings(configPath, dataPath)
	return func() { UserSettings = previous }
}
