// Package credstore provides durable storage for the single Lumen credential:
// the bearer token plus its expiration and owning identity.
//
// Three backends implement the Store interface:
//
//   - KeyringStore: platform secure storage via the system keyring
//     (Keychain, Credential Manager, Secret Service)
//   - FileStore: a 0600 JSON file with atomic write-then-rename
//   - MemoryStore: process memory only, for tests and ephemeral sessions
//
// All backends enforce the all-or-nothing invariant: a record missing its
// token or expiration is reported as absent, never partially restored.
// The token authority is the only writer; everything else reads snapshots.
package credstore
