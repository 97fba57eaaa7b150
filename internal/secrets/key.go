package secrets

import (
	"fmt"

	"github.com/awnumar/memguard"

	kerrors "github.com/PolarWolf314/envcipher/internal/errors"
)

// KeySize is the length of an AES-256 key in bytes.
const KeySize = 32

// SecretKey owns 32 bytes of key material in locked memory.
// The zero value is not usable; obtain keys from GenerateKey or NewSecretKey.
type SecretKey struct {
	buf *memguard.LockedBuffer
}

// GenerateKey creates a new random key.
func GenerateKey() *SecretKey {
	return &SecretKey{buf: memguard.NewBufferRandom(KeySize)}
}

// NewSecretKey moves raw into locked memory. raw is wiped whether or not
// the length is accepted.
func NewSecretKey(raw []byte) (*SecretKey, error) {
	if len(raw) != KeySize {
		n := len(raw)
		memguard.WipeBytes(raw)
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", kerrors.ErrInvalidKeyLength, KeySize, n)
	}
	return &SecretKey{buf: memguard.NewBufferFromBytes(raw)}, nil
}

// Bytes exposes the key material. The slice is only valid until Destroy.
func (k *SecretKey) Bytes() []byte {
	if !k.Alive() {
		return nil
	}
	return k.buf.Bytes()
}

// Alive reports whether the key still holds material.
func (k *SecretKey) Alive() bool {
	return k != nil && k.buf != nil && k.buf.IsAlive()
}

// Equal reports whether both keys hold the same material, in constant time.
func (k *SecretKey) Equal(other *SecretKey) bool {
	if !k.Alive() || !other.Alive() {
		return false
	}
	return k.buf.EqualTo(other.Bytes())
}

// Destroy wipes and releases the key. Safe to call more than once.
func (k *SecretKey) Destroy() {
	if k == nil || k.buf == nil {
		return
	}
	k.buf.Destroy()
}

// String never reveals key material.
func (k *SecretKey) String() string {
	return "SecretKey(redacted)"
}

// GoString keeps %#v from printing the buffer.
func (k *SecretKey) GoString() string {
	return k.String()
}
