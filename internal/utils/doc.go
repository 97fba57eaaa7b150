// Package utils provides shared helpers for the envcipher CLI.
//
// # System Utilities
//
//   - GetUsername: returns the current system username
//   - GetHostname: returns the system hostname
//
// # Editor Utilities
//
// ResolveEditor picks the editor for "envcipher edit" from $EDITOR, $VISUAL,
// the user config, and finally whichever of vim, nano or vi is installed.
// The command is split with shell quoting rules so values such as
// "code --wait" work.
//
// # I/O Utilities
//
//   - ReadStdin: reads piped data from standard input
//
// # Terminal Utilities
//
//   - IsTerminal: checks whether stdin is a terminal
//   - ReadSecret: prompts for a value without echoing it
package utils
