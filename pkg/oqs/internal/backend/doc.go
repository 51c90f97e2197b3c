// Package backend hosts the boundary between the Go wrapper and the native
// liboqs library. All cgo complexity is isolated here behind the Provider
// interface: the real provider is built from the liboqs function tables when
// cgo is available, and tests install a pure-Go provider instead.
//
// This package should only be imported by pkg/oqs and its subpackages.
package backend
