package keystore

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/99designs/keyring"
)

const (
	// DefaultServiceName namespaces every entry written by envcipher.
	DefaultServiceName = "envcipher"

	// BackendEnvVar restricts the keyring to a single backend, e.g. "file".
	BackendEnvVar = "ENVCIPHER_KEYRING_BACKEND"

	// PasswordEnvVar supplies the passphrase for the encrypted file backend
	// without prompting. Intended for headless CI.
	PasswordEnvVar = "ENVCIPHER_KEYRING_PASSWORD"
)

// Config selects and configures the keyring backend.
type Config struct {
	// ServiceName is the namespace entries are stored under.
	ServiceName string

	// Backends limits which keyring backends may be used, in preference
	// order. Empty means every backend available on this platform.
	Backends []string

	// FileDir is where the encrypted file backend keeps its entries.
	FileDir string
}

// KeyringBackend adapts a keyring.Keyring to the Backend interface.
type KeyringBackend struct {
	ring keyring.Keyring
}

// NewKeyringBackend wraps an already opened keyring.
func NewKeyringBackend(ring keyring.Keyring) *KeyringBackend {
	return &KeyringBackend{ring: ring}
}

// OpenKeyring opens the platform credential facility described by cfg.
// BackendEnvVar and PasswordEnvVar take precedence over cfg.
func OpenKeyring(cfg Config) (*KeyringBackend, error) {
	service := cfg.ServiceName
	if service == "" {
		service = DefaultServiceName
	}

	backends := cfg.Backends
	if env := strings.TrimSpace(os.Getenv(BackendEnvVar)); env != "" {
		backends = []string{env}
	}

	allowed, err := parseBackends(backends)
	if err != nil {
		return nil, err
	}

	passwordFunc := keyring.TerminalPrompt
	if pw, ok := os.LookupEnv(PasswordEnvVar); ok {
		passwordFunc = keyring.FixedStringPrompt(pw)
	}

	ring, err := keyring.Open(keyring.Config{
		ServiceName:              service,
		AllowedBackends:          allowed,
		KeychainName:             "login",
		KeychainTrustApplication: true,
		LibSecretCollectionName:  "login",
		KWalletAppID:             service,
		KWalletFolder:            service,
		WinCredPrefix:            service,
		PassPrefix:               service,
		FileDir:                  cfg.FileDir,
		FilePasswordFunc:         passwordFunc,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	return NewKeyringBackend(ring), nil
}

// AvailableBackends lists the keyring backends compiled in for this platform.
func AvailableBackends() []string {
	types := keyring.AvailableBackends()
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}
	return names
}

func parseBackends(names []string) ([]keyring.BackendType, error) {
	if len(names) == 0 {
		return nil, nil
	}

	known := make(map[string]bool)
	for _, t := range keyring.AvailableBackends() {
		known[string(t)] = true
	}

	allowed := make([]keyring.BackendType, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if !known[name] {
			return nil, fmt.Errorf("keyring backend %q is not available on this platform (available: %s)",
				name, strings.Join(AvailableBackends(), ", "))
		}
		allowed = append(allowed, keyring.BackendType(name))
	}
	return allowed, nil
}

// Get implements Backend.
func (b *KeyringBackend) Get(account string) (string, error) {
	item, err := b.ring.Get(account)
	if err != nil {
		return "", mapKeyringError(err)
	}
	return string(item.Data), nil
}

// Set implements Backend.
func (b *KeyringBackend) Set(account, secret string) error {
	return b.ring.Set(keyring.Item{
		Key:         account,
		Data:        []byte(secret),
		Label:       DefaultServiceName + " " + account,
		Description: "envcipher project encryption key",
	})
}

// Delete implements Backend.
func (b *KeyringBackend) Delete(account string) error {
	if err := b.ring.Remove(account); err != nil {
		return mapKeyringError(err)
	}
	return nil
}

// The file backend surfaces a missing entry as an os error rather than
// keyring.ErrKeyNotFound.
func mapKeyringError(err error) error {
	if errors.Is(err, keyring.ErrKeyNotFound) || errors.Is(err, os.ErrNotExist) {
		return ErrEntryNotFound
	}
	return err
}
