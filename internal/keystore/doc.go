// Package keystore binds one encryption key to one project identity inside
// the operating system's credential facility.
//
// The Store speaks in project identities and SecretKeys. Everything below it
// is a Backend: a string-keyed get/set/delete capability. KeyringBackend
// adapts github.com/99designs/keyring, which covers macOS Keychain, Secret
// Service, KWallet, Windows Credential Manager, keyctl, pass and an encrypted
// file fallback.
//
// No value is cached in process. Every call goes to the backend.
package keystore
