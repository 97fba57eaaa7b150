package keystore

import "errors"

// ErrEntryNotFound is returned by a Backend when no secret exists for the
// requested account.
var ErrEntryNotFound = errors.New("credential entry not found")

// Backend is the capability the Store needs from a credential facility.
// Accounts and secrets are plain strings.
type Backend interface {
	// Get returns the secret for account, or ErrEntryNotFound.
	Get(account string) (string, error)

	// Set stores secret under account, replacing any previous value.
	Set(account, secret string) error

	// Delete removes the secret for account. Removing a missing entry
	// returns ErrEntryNotFound.
	Delete(account string) error
}
