// Package idgen generates opaque identifiers for sessions and messages.
package idgen

import (
	"crypto/rand"
	"fmt"
)

// New returns 16 random bytes as 32 lowercase hex characters.
func New() string {
	b := make([]byte, 16)
	rand.Read(b)
	return fmt.Sprintf("%x", b)
}
