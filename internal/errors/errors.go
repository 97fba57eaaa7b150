package errors

import "errors"

// Project errors indicate issues locating or initializing the project.
var (
	// ErrEnvNotFound indicates no .env file could be located inside the project boundary.
	ErrEnvNotFound = errors.New("no .env file found in project")

	// ErrNotInitialized indicates no key is stored for the project identity.
	ErrNotInitialized = errors.New("envcipher has not been initialized for this project")

	// ErrAlreadyInitialized indicates the project marker already exists.
	ErrAlreadyInitialized = errors.New("envcipher has already been initialized in this directory")
)

// Keystore errors indicate issues with the OS credential store.
var (
	// ErrKeyNotFound indicates the credential store holds no key for the identity.
	ErrKeyNotFound = errors.New("encryption key not found in credential store")

	// ErrKeyStoreAccess indicates the credential store could not be read or written.
	ErrKeyStoreAccess = errors.New("credential store access failed")

	// ErrInvalidKeyLength indicates key material that is not exactly 32 bytes.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrInvalidKeyEncoding indicates key material that is not valid base64.
	ErrInvalidKeyEncoding = errors.New("invalid key encoding")
)

// Cryptographic errors indicate failures while parsing or deciphering content.
var (
	// ErrAuthenticationFailed indicates AEAD tag verification failed.
	// It covers a wrong key, a wrong nonce and any tampering alike.
	ErrAuthenticationFailed = errors.New("authentication failed: file was tampered with or key does not match")

	// ErrInvalidEnvelope indicates content that does not match the envelope grammar.
	ErrInvalidEnvelope = errors.New("invalid enciphered format")

	// ErrNonUTF8Plaintext indicates deciphered bytes that are not valid UTF-8 text.
	ErrNonUTF8Plaintext = errors.New("deciphered content is not valid UTF-8")

	// ErrEncryptFailed indicates encipherment could not be performed.
	ErrEncryptFailed = errors.New("failed to encipher content")
)

// State errors indicate the file is in the wrong state for the requested operation.
var (
	// ErrAlreadyEnciphered indicates the .env file is already locked.
	ErrAlreadyEnciphered = errors.New(".env file is already enciphered")

	// ErrNotEnciphered indicates the .env file is plaintext.
	ErrNotEnciphered = errors.New(".env file is not enciphered")
)

// Process errors indicate failures of external collaborators.
var (
	// ErrEditorFailed indicates the editor could not be launched or exited non-zero.
	ErrEditorFailed = errors.New("editor failed")

	// ErrNoCommand indicates run was invoked without a command.
	ErrNoCommand = errors.New("no command specified")
)
