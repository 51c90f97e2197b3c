// Package rand exposes the native library's cryptographically secure random
// source, plus unbiased derived generators: integers by rejection sampling,
// booleans, floats, and Fisher-Yates shuffling.
package rand
