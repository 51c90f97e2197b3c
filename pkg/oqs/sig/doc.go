// Package sig wraps one liboqs signature scheme per handle.
//
// Lifecycle and secret handling follow the same rules as package kem: close
// handles explicitly, clear key pair secrets explicitly, and treat the
// finalizers as safety nets only.
package sig
