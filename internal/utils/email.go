package utils

import "strings"

// NormalizeEmail canonicalizes an address for storage and lookup so that
// case variants map to one account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
