// Package workflows provides high-level orchestration for envcipher commands.
//
// Workflows coordinate the identity resolver, the key store, the cipher and
// the recovery engine to implement complete user-facing features. Each
// workflow handles a single command's business logic, independent of CLI
// concerns like flag parsing, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Locating the .env file and deriving the project identity
//   - Fetching the key from the credential store and wiping it afterwards
//   - Performing the core operation and writing the file atomically
//   - Recording audit trail entries
//
// # Available Workflows
//
//   - Init: generates and stores a key, writes the project marker
//   - Lock: enciphers .env in place
//   - Unlock: unwinds every encryption layer of .env in place
//   - Status: reports marker, file state and key presence
//   - Edit: deciphers into a private temp file, runs an editor, re-enciphers
//   - LoadEnv and RunCommand: start a process with the deciphered variables
//   - ExportKey and ImportKey: move the raw key between machines
//   - MigrateMarker: converts a .envcipher.json marker to TOML
//
// # Error Handling
//
// Workflows return sentinel errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching. Use errors.Is() to check for specific error conditions:
//
//	result, err := workflows.Unlock(ctx, opts)
//	if errors.Is(err, kerrors.ErrAuthenticationFailed) {
//	    // The file was tampered with or belongs to another key.
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Edit and RunCommand pass it to the child process.
package workflows
