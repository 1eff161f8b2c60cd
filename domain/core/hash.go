package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// AnonymizeUserID produces the pseudonymous identifier used for all AI
// processing. Only the first 16 hex characters are kept so the raw user id
// cannot be recovered but repeated calls stay stable for the same user.
func AnonymizeUserID(userID string) string {
	return NewHash([]byte(userID)).String()[:16]
}
