// Package errors provides typed error values for envcipher.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. Every
// failure a workflow can report maps to exactly one sentinel, so the CLI can
// tell a missing key apart from a keystore outage, or a tampered file apart
// from a malformed one.
//
// # Error Categories
//
//   - Project errors: the .env file or marker cannot be found (ErrEnvNotFound,
//     ErrNotInitialized, ErrAlreadyInitialized)
//   - Keystore errors: the OS credential store has no key or cannot be
//     reached (ErrKeyNotFound, ErrKeyStoreAccess, ErrInvalidKeyLength)
//   - Crypto errors: envelope parsing and AEAD verification
//     (ErrInvalidEnvelope, ErrAuthenticationFailed, ErrNonUTF8Plaintext)
//   - State errors: the file is in the wrong state for the operation
//     (ErrAlreadyEnciphered, ErrNotEnciphered)
//
// # Usage
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("retrieving key for %s: %w", id, errors.ErrKeyNotFound)
//
// Handle errors in the CLI layer:
//
//	if errors.Is(err, kerrors.ErrAuthenticationFailed) {
//	    // Tampering or key/file mismatch, never "corrupted file"
//	}
package errors
