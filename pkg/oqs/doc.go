// Package oqs exposes a memory-safety-focused Go API over the liboqs
// post-quantum cryptography library. The exported surface compiles without
// linking the native library; binaries built without cgo receive ErrNotBuilt
// from operations that need it.
//
// Key material crossing the Go/native boundary is zero-initialized on
// allocation and erased before release on every path. Subpackages kem and sig
// provide the per-algorithm capability handles, and subpackage rand provides
// the unbiased random facility.
package oqs
