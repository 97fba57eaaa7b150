package configs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LegacyMarkerFileName is the JSON marker written by earlier releases.
const LegacyMarkerFileName = ".envcipher.json"

// MigrationResult contains information about what was migrated.
type MigrationResult struct {
	KeyID      string
	MarkerPath string
	BackupPath string
}

type legacyMarker struct {
	Version string `json:"version"`
	KeyID   string `json:"key_id"`
}

// IsLegacyMarker reports whether dir holds a JSON marker and no TOML one.
func IsLegacyMarker(dir string) bool {
	if _, err := os.Stat(MarkerPath(dir)); err == nil {
		return false
	}
	_, err := os.Stat(filepath.Join(dir, LegacyMarkerFileName))
	return err == nil
}

func loadLegacyMarker(dir string) (*Marker, error) {
	path := filepath.Join(dir, LegacyMarkerFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy marker: %w", err)
	}

	var legacy legacyMarker
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("failed to parse legacy marker %s: %w", path, err)
	}

	m := &Marker{
		Version: legacy.Version,
		KeyID:   legacy.KeyID,
		Legacy:  true,
	}
	if info, err := os.Stat(path); err == nil {
		m.CreatedAt = info.ModTime().UTC().Truncate(time.Second)
	}
	return m, nil
}

// MigrateLegacyMarker converts a .envcipher.json marker in dir to
// .envcipher.toml. The JSON file is kept as a backup with a timestamped name.
func MigrateLegacyMarker(dir string) (*MigrationResult, error) {
	if !IsLegacyMarker(dir) {
		return nil, fmt.Errorf("no legacy marker in %s", dir)
	}

	m, err := loadLegacyMarker(dir)
	if err != nil {
		return nil, err
	}
	m.Version = MarkerVersion
	m.Legacy = false

	if err := SaveMarker(dir, m); err != nil {
		return nil, err
	}

	legacyPath := filepath.Join(dir, LegacyMarkerFileName)
	backupPath := legacyPath + ".bak-" + time.Now().Format("20060102-150405")
	if err := os.Rename(legacyPath, backupPath); err != nil {
		return nil, fmt.Errorf("failed to back up legacy marker: %w", err)
	}

	return &MigrationResult{
		KeyID:      m.KeyID,
		MarkerPath: MarkerPath(dir),
		BackupPath: backupPath,
	}, nil
}
