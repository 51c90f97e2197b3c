// Package testoqs provides a pure-Go capability provider backed by
// cloudflare/circl, so the full wrapper surface is exercisable without
// linking the native liboqs library. It serves the ML-KEM and ML-DSA
// parameter sets under their standard names.
//
// Options exist to disable derandomized key generation per algorithm and to
// corrupt a mechanism's function table, both purely to exercise the wrapper's
// defensive paths. Testing only.
package testoqs
