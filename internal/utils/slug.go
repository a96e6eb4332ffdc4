package utils

import (
	"strings"
	"unicode"
)

// Slugify derives a URL-safe identifier from a name: lowercased, runs of
// non-alphanumerics collapsed into single hyphens, trimmed at both ends.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen

	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
