package domain

import (
	"strings"
)

// NormalizeText prepares text for storage and comparison:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses runs of whitespace into one space
//
// Diacritics, hyphens, and apostrophes are preserved.
func NormalizeText(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

// IsASCIILetter reports whether b is in [A-Za-z].
func IsASCIILetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// HeadwordLetter returns the lowercase first letter of a headword and
// whether that letter lies in [a-z].
func HeadwordLetter(headword string) (byte, bool) {
	if headword == "" || !IsASCIILetter(headword[0]) {
		return 0, false
	}
	return headword[0] | 0x20, true
}
