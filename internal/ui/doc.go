// Package ui provides semantic text formatting for envcipher output.
//
// Formatters render content according to terminal capabilities. With colors
// available, content is colorized. When NO_COLOR is set or the terminal does
// not support colors, text decorations (backticks, quotes) are used instead.
//
//	ui.Code.Sprint("envcipher lock")   // Commands
//	ui.Path.Sprint(".env")             // File paths
//	ui.Secret.Sprint(exportedKey)      // Key material shown on explicit export only
//	ui.Done("Locked!")                 // "✓ Locked!"
//	ui.Fail("Key not found")           // "✗ Key not found"
//	ui.Hint("Run envcipher init")      // "→ Run envcipher init"
package ui
