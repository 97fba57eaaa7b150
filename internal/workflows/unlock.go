package workflows

import (
	"context"

	"github.com/PolarWolf314/envcipher/internal/audit"
	"github.com/PolarWolf314/envcipher/internal/envelope"
	kerrors "github.com/PolarWolf314/envcipher/internal/errors"
	"github.com/PolarWolf314/envcipher/internal/recovery"
	"github.com/PolarWolf314/envcipher/internal/secrets"
)

// UnlockOptions configures the unlock workflow.
type UnlockOptions struct {
	Common
}

// UnlockResult contains the outcome of an unlock operation.
type UnlockResult struct {
	// EnvPath is the file that was deciphered.
	EnvPath string

	// KeyID is the short identity of the key used.
	KeyID string

	// Layers is the number of encryption layers removed.
	Layers int

	// Exhausted is set when the iteration cap stopped recovery early. The
	// file holds the best effort and unlock can be run again.
	Exhausted bool

	// Preserved counts envelope lines that could not be deciphered and were
	// left in the file as they were.
	Preserved int
}

// Unlock deciphers the project's .env file in place, removing every layer of
// encryption it can.
//
// Returns ErrNotEnciphered if the file holds no envelope content.
// Returns ErrNotInitialized if the credential store has no key for the project.
// Returns ErrAuthenticationFailed if the key does not match or the file was
// tampered with, and ErrInvalidEnvelope if an envelope is malformed. The file
// is left untouched in both cases.
func Unlock(ctx context.Context, opts UnlockOptions) (*UnlockResult, error) {
	proj, err := opts.resolve()
	if err != nil {
		return nil, err
	}

	contents, err := secrets.ReadEnvFile(proj.EnvPath)
	if err != nil {
		return nil, err
	}

	if envelope.Classify(contents) == envelope.Plaintext {
		return nil, kerrors.ErrNotEnciphered
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

	res, err := recovery.Unwind(key, contents)
	if err != nil {
		return nil, err
	}

	result := &UnlockResult{
		EnvPath:   proj.EnvPath,
		KeyID:     proj.Identity.KeyID(),
		Layers:    res.Layers,
		Exhausted: res.Exhausted,
		Preserved: res.Preserved,
	}

	if res.Layers > 0 {
		if err := secrets.WriteEnvFile(proj.EnvPath, res.Content); err != nil {
			return nil, err
		}
	}

	auditEntry := audit.NewEntry("unlock")
	auditEntry.KeyID = result.KeyID
	auditEntry.File = result.EnvPath
	auditEntry.Layers = result.Layers
	auditEntry.Preserved = result.Preserved
	auditEntry.Exhausted = result.Exhausted
	audit.Log(auditEntry)

	return result, nil
}
