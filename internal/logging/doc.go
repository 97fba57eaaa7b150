// Package logger provides leveled console logging for envcipher commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is formatted with colored semantic prefixes.
//
// # Verbosity Levels
//
//   - --verbose: Shows info messages
//   - --debug: Shows info and debug messages
//
// Warnings and errors are always shown on stderr.
//
// # Log Methods
//
//	Logger.Infof()           // Shown with --verbose or --debug
//	Logger.Debugf()          // Shown only with --debug
//	Logger.Warnf()           // Always shown
//	Logger.Errorf()          // Always shown
//	Logger.ErrorfAndReturn() // Logs at debug level and returns the error
//
// # Secrets
//
// Key material and plaintext file contents must never be passed to the
// logger. Log key IDs and paths instead.
package logger
