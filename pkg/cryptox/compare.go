package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
)

// EqualSecret compares two secrets in constant time. Both sides are hashed
// first so the comparison does not leak the expected length either.
func EqualSecret(got, want string) bool {
	g := sha256.Sum256([]byte(got))
	w := sha256.Sum256([]byte(want))
	return subtle.ConstantTimeCompare(g[:], w[:]) == 1
}
