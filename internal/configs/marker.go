package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// MarkerFileName is the project marker written by init.
	MarkerFileName = ".envcipher.toml"

	// MarkerVersion is the marker format version written by this release.
	MarkerVersion = "1"
)

// Marker records that a project directory has been initialized.
type Marker struct {
	Version   string    `toml:"version"`
	KeyID     string    `toml:"key_id"`
	CreatedAt time.Time `toml:"created_at"`

	// Legacy is set when the marker was read from a .envcipher.json file.
	Legacy bool `toml:"-"`
}

// MarkerPath returns the marker location inside dir.
func MarkerPath(dir string) string {
	return filepath.Join(dir, MarkerFileName)
}

// MarkerExists reports whether dir holds a marker in either format.
func MarkerExists(dir string) bool {
	if _, err := os.Stat(MarkerPath(dir)); err == nil {
		return true
	}
	return IsLegacyMarker(dir)
}

// SaveMarker writes m into dir.
func SaveMarker(dir string, m *Marker) error {
	if m.Version == "" {
		m.Version = MarkerVersion
	}
	if err := SaveTOML(MarkerPath(dir), m); err != nil {
		return fmt.Errorf("failed to save project marker: %w", err)
	}
	return nil
}

// LoadMarker reads the marker in dir, falling back to a legacy JSON marker.
// It returns os.ErrNotExist wrapped when dir holds neither.
func LoadMarker(dir string) (*Marker, error) {
	path := MarkerPath(dir)
	if _, err := os.Stat(path); err == nil {
		m := &Marker{}
		if err := LoadTOML(path, m); err != nil {
			return nil, fmt.Errorf("failed to load project marker: %w", err)
		}
		return m, nil
	}

	if IsLegacyMarker(dir) {
		return loadLegacyMarker(dir)
	}

	return nil, fmt.Errorf("no project marker in %s: %w", dir, os.ErrNotExist)
}
