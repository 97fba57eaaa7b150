package keystore

import (
	"encoding/base64"
	"errors"
	"fmt"

	kerrors "github.com/PolarWolf314/envcipher/internal/errors"
	"github.com/PolarWolf314/envcipher/internal/project"
	"github.com/PolarWolf314/envcipher/internal/secrets"
)

// Store keeps one key per project identity.
type Store struct {
	backend Backend
}

// New returns a Store over backend.
func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Exists reports whether a key is stored for id. A missing entry is not an
// error.
func (s *Store) Exists(id project.Identity) (bool, error) {
	_, err := s.backend.Get(id.String())
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrEntryNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", kerrors.ErrKeyStoreAccess, err)
	}
}

// Put stores key under id, overwriting any previous key.
func (s *Store) Put(id project.Identity, key *secrets.SecretKey) error {
	if !key.Alive() {
		return fmt.Errorf("%w: key has been destroyed", kerrors.ErrInvalidKeyLength)
	}
	encoded := base64.StdEncoding.EncodeToString(key.Bytes())
	if err := s.backend.Set(id.String(), encoded); err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrKeyStoreAccess, err)
	}
	return nil
}

// Retrieve loads the key stored for id. The caller owns the returned key
// and must Destroy it.
func (s *Store) Retrieve(id project.Identity) (*secrets.SecretKey, error) {
	encoded, err := s.backend.Get(id.String())
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return nil, fmt.Errorf("%w for project %s", kerrors.ErrKeyNotFound, id.KeyID())
		}
		return nil, fmt.Errorf("%w: %v", kerrors.ErrKeyStoreAccess, err)
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: stored key for project %s is not valid base64", kerrors.ErrInvalidKeyEncoding, id.KeyID())
	}

	key, err := secrets.NewSecretKey(raw)
	if err != nil {
		return nil, fmt.Errorf("stored key for project %s: %w", id.KeyID(), err)
	}
	return key, nil
}

// Delete removes the key for id. Deleting an absent key succeeds.
func (s *Store) Delete(id project.Identity) error {
	err := s.backend.Delete(id.String())
	if err == nil || errors.Is(err, ErrEntryNotFound) {
		return nil
	}
	return fmt.Errorf("%w: %v", kerrors.ErrKeyStoreAccess, err)
}
