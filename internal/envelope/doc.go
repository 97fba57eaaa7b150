// Package envelope serializes enciphered payloads as a single text line and
// classifies file contents as plaintext, enciphered or corrupted.
//
// # Wire Format
//
//	ENVCIPHER:v1:<base64 nonce>:<base64 ciphertext+tag>\n
//
// Both fields use standard padded base64. The nonce is exactly 12 bytes. The
// authentication tag is part of the ciphertext field; there is no separate
// tag field.
//
// # States
//
// A file is Enciphered only when it holds exactly one non-blank line and
// that line decodes. Any other content carrying the tag is CorruptedMixed and
// is never treated as plaintext. Everything else, including an empty file, is
// Plaintext.
package envelope
