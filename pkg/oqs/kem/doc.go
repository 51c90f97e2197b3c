// Package kem wraps one liboqs key encapsulation mechanism per handle.
//
// A handle owns exactly one native algorithm descriptor. Close it explicitly
// when done; a finalizer acts as a safety net for abandoned handles, but
// relying on it delays the release of native memory.
//
// Key pairs and encapsulation results hold secret bytes. Call ClearSecrets on
// them as soon as the secret is no longer needed; a finalizer zeroizes the
// secret defensively if the holder never does, but garbage collection timing
// is unspecified and explicit clearing is the only prompt path.
package kem
