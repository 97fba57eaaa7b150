package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/envcipher/internal/errors"
	"github.com/PolarWolf314/envcipher/internal/envelope"
)

// NonceSize is the GCM nonce length in bytes.
const NonceSize = envelope.NonceSize

// randReader is swapped in tests to simulate an exhausted entropy source.
var randReader io.Reader = rand.Reader

func newGCM(key *SecretKey) (cipher.AEAD, error) {
	raw := key.Bytes()
	if len(raw) != KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", kerrors.ErrInvalidKeyLength, KeySize, len(raw))
	}
	block, err := aes.NewCipher(raw)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Encipher encrypts plaintext under key with a fresh random nonce.
// The returned ciphertext carries the authentication tag.
func Encipher(key *SecretKey, plaintext []byte) ([]byte, [NonceSize]byte, error) {
	var nonce [NonceSize]byte

	gcm, err := newGCM(key)
	if err != nil {
		return nil, nonce, fmt.Errorf("%w: %v", kerrors.ErrEncryptFailed, err)
	}

	if _, err := io.ReadFull(randReader, nonce[:]); err != nil {
		return nil, nonce, fmt.Errorf("%w: generating nonce: %v", kerrors.ErrEncryptFailed, err)
	}

	return gcm.Seal(nil, nonce[:], plaintext, nil), nonce, nil
}

// Decipher verifies and decrypts ciphertext. Every failure is reported as
// ErrAuthenticationFailed.
func Decipher(key *SecretKey, nonce [NonceSize]byte, ciphertext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, kerrors.ErrAuthenticationFailed
	}

	plaintext, err := gcm.Open(nil, nonce[:], ciphertext, nil)
	if err != nil {
		return nil, kerrors.ErrAuthenticationFailed
	}
	return plaintext, nil
}

// Seal enciphers plaintext and serializes the result as one envelope line.
func Seal(key *SecretKey, plaintext []byte) (string, error) {
	ciphertext, nonce, err := Encipher(key, plaintext)
	if err != nil {
		return "", err
	}
	return envelope.Encode(nonce, ciphertext), nil
}

// Open parses an envelope line and deciphers it.
func Open(key *SecretKey, text string) ([]byte, error) {
	env, err := envelope.Decode(text)
	if err != nil {
		return nil, err
	}
	return Decipher(key, env.Nonce, env.Ciphertext)
}
