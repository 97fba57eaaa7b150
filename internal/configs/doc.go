// Package configs manages user configuration and the per-project marker.
//
// Both are stored in TOML.
//
//   - User config: $XDG_CONFIG_HOME/envcipher/config.toml (keyring backend
//     selection, editor override)
//   - Project marker: .envcipher.toml next to where init was run (format
//     version, key ID, creation time)
//
// # User Configuration
//
// The [keystore] table selects the credential backend:
//
//	[keystore]
//	service  = "envcipher"
//	backends = ["keychain", "file"]
//	file_dir = "~/.local/share/envcipher/keyring"
//
// The [editor] table overrides the editor used by "envcipher edit". $EDITOR
// and $VISUAL still take precedence.
//
// # Project Marker
//
// The marker records that init has run and which key ID the project uses.
// It holds no key material. Markers written by earlier releases as
// .envcipher.json are still recognized and can be converted with
// MigrateLegacyMarker.
//
// # Settings
//
// UserSettings is computed at startup and holds the paths of the config
// file, the audit log and the file keyring directory.
package configs
