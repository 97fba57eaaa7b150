package workflows

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/envcipher/internal/audit"
	"github.com/PolarWolf314/envcipher/internal/configs"
	kerrors "github.com/PolarWolf314/envcipher/internal/errors"
	"github.com/PolarWolf314/envcipher/internal/project"
	"github.com/PolarWolf314/envcipher/internal/secrets"
)

// DefaultEnvContent is written when init has to create the .env file.
const DefaultEnvContent = "# Environment variables\n"

// InitOptions configures the init workflow.
type InitOptions struct {
	Common
}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	// EnvPath is the .env file the key is bound to.
	EnvPath string

	// CreatedEnv is set when no .env existed and one was created.
	CreatedEnv bool

	// ProjectDir is the directory whose identity the key is stored under.
	ProjectDir string

	// KeyID is the short identity shown to users.
	KeyID string

	// ReusedKey is set when the store already held a key for this project,
	// typically left behind by an interrupted init.
	ReusedKey bool

	// MarkerPath is the marker file written.
	MarkerPath string
}

// Init prepares the working directory for envcipher.
//
// It locates the project's .env (creating one in the working directory if
// none is found), stores a fresh key for the project identity unless one is
// already present, and writes the project marker.
//
// Returns ErrAlreadyInitialized if the working directory already holds a marker.
// Returns ErrKeyStoreAccess if the credential store cannot be used.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	wd, err := opts.workDir()
	if err != nil {
		return nil, err
	}

	if configs.MarkerExists(wd) {
		return nil, kerrors.ErrAlreadyInitialized
	}

	result := &InitResult{}

	envPath, err := opts.resolver().Locate(wd)
	switch {
	case err == nil:
		result.EnvPath = envPath
	case errors.Is(err, kerrors.ErrEnvNotFound):
		envPath = filepath.Join(wd, project.EnvFileName)
		if err := secrets.WriteEnvFile(envPath, DefaultEnvContent); err != nil {
			return nil, fmt.Errorf("creating %s: %w", envPath, err)
		}
		result.EnvPath = envPath
		result.CreatedEnv = true
	default:
		return nil, err
	}

	result.ProjectDir = filepath.Dir(result.EnvPath)
	id := project.DeriveIdentity(result.ProjectDir)
	result.KeyID = id.KeyID()

	store, err := opts.store()
	if err != nil {
		return nil, err
	}

	exists, err := store.Exists(id)
	if err != nil {
		return nil, err
	}

	if exists {
		result.ReusedKey = true
	} else {
		key := secrets.GenerateKey()
		defer key.Destroy()

		if err := store.Put(id, key); err != nil {
			return nil, err
		}
	}

	marker := &configs.Marker{
		KeyID:     result.KeyID,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := configs.SaveMarker(wd, marker); err != nil {
		return nil, err
	}
	result.MarkerPath = configs.MarkerPath(wd)

	auditEntry := audit.NewEntry("init")
	auditEntry.KeyID = result.KeyID
	auditEntry.File = result.EnvPath
	auditEntry.Reused = result.ReusedKey
	audit.Log(auditEntry)

	return result, nil
}
