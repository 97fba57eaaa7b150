package workflows

import (
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/envcipher/internal/configs"
	kerrors "github.com/PolarWolf314/envcipher/internal/errors"
	"github.com/PolarWolf314/envcipher/internal/keystore"
	"github.com/PolarWolf314/envcipher/internal/project"
	"github.com/PolarWolf314/envcipher/internal/secrets"
)

// Common carries the collaborators every workflow needs. Zero values select
// the current directory, the configured OS credential store and the default
// .env resolver.
type Common struct {
	// WorkDir is where the .env search starts.
	WorkDir string

	// Store holds project keys.
	Store *keystore.Store

	// Resolver locates the .env file.
	Resolver *project.Resolver
}

// OpenStore opens the credential store selected by the user config.
func OpenStore() (*keystore.Store, error) {
	userConfig, err := configs.LoadUserConfig()
	if err != nil {
		return nil, fmt.Errorf("loading user config: %w", err)
	}

	backend, err := keystore.OpenKeyring(userConfig.KeyringConfig())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrKeyStoreAccess, err)
	}
	return keystore.New(backend), nil
}

func (c Common) workDir() (string, error) {
	if c.WorkDir != "" {
		return c.WorkDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return wd, nil
}

func (c Common) resolver() *project.Resolver {
	if c.Resolver != nil {
		return c.Resolver
	}
	return project.NewResolver()
}

func (c Common) store() (*keystore.Store, error) {
	if c.Store != nil {
		return c.Store, nil
	}
	return OpenStore()
}

// resolve locates the .env file from the working directory.
func (c Common) resolve() (*project.Project, error) {
	wd, err := c.workDir()
	if err != nil {
		return nil, err
	}
	return c.resolver().Resolve(wd)
}

// retrieveKey loads the key for id. A missing key means the project was
// never initialized on this machine. The caller must Destroy the key.
func retrieveKey(store *keystore.Store, id project.Identity) (*secrets.SecretKey, error) {
	key, err := store.Retrieve(id)
	if errors.Is(err, kerrors.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrNotInitialized, err)
	}
	return key, err
}
