package workflows

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/PolarWolf314/envcipher/internal/audit"
	"github.com/PolarWolf314/envcipher/internal/configs"
	"github.com/PolarWolf314/envcipher/internal/envelope"
	kerrors "github.com/PolarWolf314/envcipher/internal/errors"
	"github.com/PolarWolf314/envcipher/internal/project"
	"github.com/PolarWolf314/envcipher/internal/secrets"
)

// StatusOptions configures the status workflow.
type StatusOptions struct {
	Common
}

// StatusResult describes the project as seen from the working directory.
// Problems reading individual pieces are reported in the result rather than
// failing the whole workflow.
type StatusResult struct {
	Directory   string `json:"directory" yaml:"directory"`
	Initialized bool   `json:"initialized" yaml:"initialized"`

	// LegacyMarker is set when the marker is a .envcipher.json file.
	LegacyMarker bool   `json:"legacy_marker,omitempty" yaml:"legacy_marker,omitempty"`
	MarkerKeyID  string `json:"marker_key_id,omitempty" yaml:"marker_key_id,omitempty"`

	EnvFound bool           `json:"env_found" yaml:"env_found"`
	EnvPath  string         `json:"env_path,omitempty" yaml:"env_path,omitempty"`
	EnvError string         `json:"env_error,omitempty" yaml:"env_error,omitempty"`
	State    envelope.State `json:"state" yaml:"state"`
	Modified time.Time      `json:"modified,omitempty" yaml:"modified,omitempty"`

	KeyID      string `json:"key_id,omitempty" yaml:"key_id,omitempty"`
	KeyPresent bool   `json:"key_present" yaml:"key_present"`
	KeyError   string `json:"key_error,omitempty" yaml:"key_error,omitempty"`

	// KeyIDMismatch is set when the marker names a different key ID than
	// the one derived from the .env directory, usually because the project
	// was moved or renamed.
	KeyIDMismatch bool `json:"key_id_mismatch,omitempty" yaml:"key_id_mismatch,omitempty"`

	LastActivity *audit.Entry `json:"last_activity,omitempty" yaml:"last_activity,omitempty"`
}

// Status reports whether the working directory is initialized, where its
// .env lives, whether it is enciphered and whether the key is available.
//
// Only failure to determine the working directory is returned as an error.
func Status(ctx context.Context, opts StatusOptions) (*StatusResult, error) {
	wd, err := opts.workDir()
	if err != nil {
		return nil, err
	}

	result := &StatusResult{Directory: wd}

	if marker, err := configs.LoadMarker(wd); err == nil {
		result.Initialized = true
		result.LegacyMarker = marker.Legacy
		result.MarkerKeyID = marker.KeyID
	}

	proj, err := opts.resolver().Resolve(wd)
	if err != nil {
		if !errors.Is(err, kerrors.ErrEnvNotFound) {
			result.EnvError = err.Error()
		}
		return result, nil
	}
	result.EnvFound = true
	result.EnvPath = proj.EnvPath
	result.KeyID = proj.Identity.KeyID()
	result.KeyIDMismatch = result.MarkerKeyID != "" && result.MarkerKeyID != result.KeyID

	if contents, err := secrets.ReadEnvFile(proj.EnvPath); err != nil {
		result.EnvError = err.Error()
	} else {
		result.State = envelope.Classify(contents)
	}

	if info, err := os.Stat(proj.EnvPath); err == nil {
		result.Modified = info.ModTime()
	}

	result.KeyPresent, result.KeyError = keyPresence(opts.Common, proj.Identity)

	if entry, err := audit.LastEntry(result.KeyID); err == nil {
		result.LastActivity = entry
	}

	return result, nil
}

func keyPresence(c Common, id project.Identity) (bool, string) {
	store, err := c.store()
	if err != nil {
		return false, err.Error()
	}
	ok, err := store.Exists(id)
	if err != nil {
		return false, err.Error()
	}
	return ok, ""
}
