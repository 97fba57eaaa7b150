// Package secrets provides the cryptographic core of envcipher.
//
// # Keys
//
// A project has one 256-bit key. It lives in the OS credential store and is
// only ever held in process memory as a SecretKey, which keeps the bytes in a
// memguard locked buffer (mlocked, guarded, excluded from core dumps). Every
// holder defers Destroy immediately after acquiring a key so the material is
// wiped on success, error and panic paths alike.
//
// # Encryption
//
// The whole .env file is one opaque unit enciphered with AES-256-GCM under a
// fresh random 12-byte nonce. The 16-byte tag is appended to the ciphertext.
// Any verification failure (wrong key, wrong nonce, tampering) is reported as
// the single ErrAuthenticationFailed, so callers cannot distinguish failure
// modes.
//
// Seal and Open combine the cipher with the envelope codec to produce and
// consume the on-disk line:
//
//	ENVCIPHER:v1:<base64 nonce>:<base64 ciphertext+tag>
//
// # Key Transport
//
// ExportKey and ImportKey convert raw key material to and from standard
// base64 for sharing with teammates. Import validates the length before the
// key can reach the credential store.
package secrets
