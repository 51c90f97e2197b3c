package oqs

import (
	"crypto/subtle"
	"runtime"
)

// ZeroizeBytes overwrites the provided slice with zeros and prevents compiler
// dead store elimination using runtime.KeepAlive.
//
// This follows the pattern recommended in golang/go#33325 and used by security-
// focused libraries. While this cannot guarantee complete memory sanitization
// due to Go's garbage collector and potential copies made by crypto libraries,
// it represents current best practice in the Go ecosystem for sensitive memory.
//
// Buffers on the native side of the boundary are erased separately with
// liboqs' OQS_MEM_cleanse / OQS_MEM_secure_free before they are released.
func ZeroizeBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	// Prevent dead store elimination per golang/go#33325
	runtime.KeepAlive(buf)
}

// ConstantTimeEquals compares two byte slices in time independent of where a
// mismatch occurs. Two empty slices are equal. Mismatched lengths yield false,
// but only after the content comparison over the shorter prefix has run: the
// length signal is folded into the result bitwise rather than short-circuiting,
// so comparison latency does not reveal secret lengths.
func ConstantTimeEquals(a, b []byte) bool {
	lengthsEqual := subtle.ConstantTimeEq(int32(len(a)), int32(len(b)))

	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	contentEqual := 1
	if n > 0 {
		contentEqual = subtle.ConstantTimeCompare(a[:n], b[:n])
	}

	return lengthsEqual&contentEqual == 1
}
