package workflows

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/PolarWolf314/envcipher/internal/audit"
	kerrors "github.com/PolarWolf314/envcipher/internal/errors"
	"github.com/PolarWolf314/envcipher/internal/project"
	"github.com/PolarWolf314/envcipher/internal/secrets"
)

// ExportKeyOptions configures the export-key workflow.
type ExportKeyOptions struct {
	Common
}

// ExportKeyResult holds the exported key.
type ExportKeyResult struct {
	// Key is the base64 key material. Treat it like a password.
	Key string

	// KeyID is the short identity of the project.
	KeyID string

	// ProjectDir is the directory the key is bound to.
	ProjectDir string
}

// ExportKey returns the project's key encoded for transport to another
// machine.
//
// Returns ErrEnvNotFound if no .env can be located.
// Returns ErrNotInitialized if the credential store has no key for the project.
func ExportKey(ctx context.Context, opts ExportKeyOptions) (*ExportKeyResult, error) {
	proj, err := opts.resolve()
	if err != nil {
		return nil, err
	}

	store, err := opts.store()
	if err != nil {
		return nil, err
	}

	key, err := retrieveKey(store, proj.Identity)
	if err != nil {
		return nil, err
	}
	defer key.Destroy()

	auditEntry := audit.NewEntry("export-key")
	auditEntry.KeyID = proj.Identity.KeyID()
	audit.Log(auditEntry)

	return &ExportKeyResult{
		Key:        secrets.ExportKey(key),
		KeyID:      proj.Identity.KeyID(),
		ProjectDir: proj.Dir,
	}, nil
}

// ImportKeyOptions configures the import-key workflow.
type ImportKeyOptions struct {
	Common

	// Key is the base64 key material produced by ExportKey. It is only
	// read; wiping it stays with the caller.
	Key []byte
}

// ImportKeyResult contains the outcome of an import-key operation.
type ImportKeyResult struct {
	// ProjectDir is the directory the key was bound to.
	ProjectDir string

	// KeyID is the short identity of the project.
	KeyID string

	// Replaced is set when a different key was already stored.
	Replaced bool
}

// ImportKey stores externally supplied key material for the project.
//
// The key is bound to the directory of the located .env, or to the working
// directory when there is none yet (a fresh clone with only the enciphered
// file ignored by git, for instance).
//
// Returns ErrInvalidKeyEncoding or ErrInvalidKeyLength before the store is
// touched if the material is not exactly 32 bytes of base64.
func ImportKey(ctx context.Context, opts ImportKeyOptions) (*ImportKeyResult, error) {
	key, err := secrets.ImportKeyBytes(opts.Key)
	if err != nil {
		return nil, err
	}
	defer key.Destroy()

	wd, err := opts.workDir()
	if err != nil {
		return nil, err
	}

	projectDir := wd
	envPath, err := opts.resolver().Locate(wd)
	switch {
	case err == nil:
		projectDir = filepath.Dir(envPath)
	case !errors.Is(err, kerrors.ErrEnvNotFound):
		return nil, err
	}

	id := project.DeriveIdentity(projectDir)

	store, err := opts.store()
	if err != nil {
		return nil, err
	}

	replaced := false
	existing, err := store.Retrieve(id)
	switch {
	case err == nil:
		replaced = !existing.Equal(key)
		existing.Destroy()
	case errors.Is(err, kerrors.ErrKeyNotFound):
	case errors.Is(err, kerrors.ErrKeyStoreAccess):
		return nil, err
	default:
		// The stored value is unusable; the import repairs it.
		replaced = true
	}

	if err := store.Put(id, key); err != nil {
		return nil, err
	}

	auditEntry := audit.NewEntry("import-key")
	auditEntry.KeyID = id.KeyID()
	audit.Log(auditEntry)

	return &ImportKeyResult{
		ProjectDir: projectDir,
		KeyID:      id.KeyID(),
		Replaced:   replaced,
	}, nil
}
