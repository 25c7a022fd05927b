// Package store provides persistence for the camera's preferences and media index.
//
// It contains concrete implementations of the domain storage interfaces:
//   - Preferences (PreferenceFileStore): one JSON file under the app home,
//     written atomically; a missing file means defaults.
//   - Media index (MediaIndex): a SQL table of published photos with a pending
//     flag, backed by embedded SQLite by default or a shared MySQL server.
//
// All methods are safe for concurrent use.
package store
