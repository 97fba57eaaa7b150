// Package audit keeps a per-user trail of envcipher operations.
//
// Every operation that touches a key or rewrites a .env file (init, lock,
// unlock, edit, import-key, export-key) is recorded so "envcipher status"
// can show when a project was last locked or unlocked, and by whom.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line) under
// the user data directory:
//
//	$XDG_DATA_HOME/envcipher/audit.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - Entry ID (UUID)
//   - OS user and host
//   - Operation name
//   - Key ID and .env path of the project
//   - Recovery details for unlock (layers, preserved lines)
//
// Entries never contain key material or file contents.
//
// # Usage
//
//	entry := audit.NewEntry("lock")
//	entry.KeyID = id.KeyID()
//	entry.File = envPath
//	audit.Log(entry)
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error.
//
// # Reading Logs
//
// ReadEntries parses the whole log; LastEntry finds the most recent entry
// for a key ID. Malformed lines are skipped to tolerate partial writes.
package audit
