// Package identity issues the anonymous voter tokens that stand in for a
// participant for the lifetime of a voting session. The token is opaque to
// the core: the ledger only ever compares it for equality.
package identity

import "github.com/google/uuid"

// NewToken returns a fresh voter identity token.
func NewToken() string {
	return uuid.NewString()
}

// Valid reports whether s looks like a token this package issued. Anything
// else is rejected at the boundary before it can reach the ledger.
func Valid(s string) bool {
	if s == "" {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
