package workflows

import (
	"context"

	"github.com/PolarWolf314/envcipher/internal/audit"
	"github.com/PolarWolf314/envcipher/internal/envelope"
	kerrors "github.com/PolarWolf314/envcipher/internal/errors"
	"github.com/PolarWolf314/envcipher/internal/secrets"
)

// LockOptions configures the lock workflow.
type LockOptions struct {
	Common
}

// LockResult contains the outcome of a lock operation.
type LockResult struct {
	// EnvPath is the file that was enciphered.
	EnvPath string

	// KeyID is the short identity of the key used.
	KeyID string

	// NestedWarning is set when the content already held envelope lines
	// mixed with plaintext. It is now nested one layer deeper; unlock will
	// unwind it.
	NestedWarning bool
}

// Lock enciphers the project's .env file in place.
//
// Returns ErrEnvNotFound if no .env can be located.
// Returns ErrAlreadyEnciphered if the file is already a single envelope.
// Returns ErrNotInitialized if the credential store has no key for the project.
func Lock(ctx context.Context, opts LockOptions) (*LockResult, error) {
	proj, err := opts.resolve()
	if err != nil {
		return nil, err
	}

	contents, err := secrets.ReadEnvFile(proj.EnvPath)
	if err != nil {
		return nil, err
	}

	result := &LockResult{
		EnvPath: proj.EnvPath,
		KeyID:   proj.Identity.KeyID(),
	}

	switch envelope.Classify(contents) {
	case envelope.Enciphered:
		return nil, kerrors.ErrAlreadyEnciphered
	case envelope.CorruptedMixed:
		result.NestedWarning = true
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

	line, err := secrets.Seal(key, []byte(contents))
	if err != nil {
		return nil, err
	}

	if err := secrets.WriteEnvFile(proj.EnvPath, line); err != nil {
		return nil, err
	}

	auditEntry := audit.NewEntry("lock")
	auditEntry.KeyID = result.KeyID
	auditEntry.File = result.EnvPath
	audit.Log(auditEntry)

	return result, nil
}
