package workflows

import (
	"context"

	"github.com/PolarWolf314/envcipher/internal/configs"
	kerrors "github.com/PolarWolf314/envcipher/internal/errors"
)

// MigrateOptions configures the migrate workflow.
type MigrateOptions struct {
	Common
}

// MigrateResult contains the outcome of a migrate operation.
type MigrateResult struct {
	// Migrated is false when the marker was already current.
	Migrated bool

	// KeyID is the key ID recorded in the marker.
	KeyID string

	// MarkerPath is the TOML marker.
	MarkerPath string

	// BackupPath is where the legacy JSON marker was moved.
	BackupPath string
}

// MigrateMarker converts a .envcipher.json marker in the working directory
// to .envcipher.toml.
//
// Returns ErrNotInitialized if the directory holds no marker at all.
func MigrateMarker(ctx context.Context, opts MigrateOptions) (*MigrateResult, error) {
	wd, err := opts.workDir()
	if err != nil {
		return nil, err
	}

	if !configs.MarkerExists(wd) {
		return nil, kerrors.ErrNotInitialized
	}

	if !configs.IsLegacyMarker(wd) {
		marker, err := configs.LoadMarker(wd)
		if err != nil {
			return nil, err
		}
		return &MigrateResult{KeyID: marker.KeyID, MarkerPath: configs.MarkerPath(wd)}, nil
	}

	migrated, err := configs.MigrateLegacyMarker(wd)
	if err != nil {
		return nil, err
	}

	return &MigrateResult{
		Migrated:   true,
		KeyID:      migrated.KeyID,
		MarkerPath: migrated.MarkerPath,
		BackupPath: migrated.BackupPath,
	}, nil
}
