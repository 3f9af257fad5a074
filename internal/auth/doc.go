// Package auth implements the token authority: the single owner of the
// process-wide authentication state.
//
// The Authenticator answers two questions for the rest of the client:
// "give me a usable credential" (CurrentCredential, never stale) and
// "will the credential stay usable" (EnsureFresh, single-flight refresh).
// State transitions follow a closed machine:
//
//	Unauthenticated -> Authenticating   on SignIn
//	Authenticating  -> Authenticated    exchange succeeded, credential persisted
//	Authenticating  -> Failed           exchange rejected; terminal until the
//	                                    next SignIn
//	Authenticated   -> Unauthenticated  explicit SignOut, or a refresh attempt
//	                                    that cannot succeed
//
// The credential is the only shared mutable resource in the subsystem: many
// concurrent readers take snapshots, and only the Authenticator writes it,
// under the single-flight refresh gate.
package auth
