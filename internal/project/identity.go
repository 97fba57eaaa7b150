package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// IdentityLength is the number of hex characters in an Identity.
const IdentityLength = 16

// keyIDLength is the number of hex characters shown to users as the key ID.
const keyIDLength = 8

// Identity is the stable key-store account name for a project directory.
type Identity string

// DeriveIdentity hashes the directory string as given. No cleaning or
// symlink resolution is applied.
func DeriveIdentity(dir string) Identity {
	sum := sha256.Sum256([]byte(dir))
	return Identity(hex.EncodeToString(sum[:IdentityLength/2]))
}

// KeyID returns the short prefix of the identity shown to users and
// recorded in the project marker.
func (id Identity) KeyID() string {
	if len(id) < keyIDLength {
		return string(id)
	}
	return string(id[:keyIDLength])
}

func (id Identity) String() string {
	return string(id)
}
