package domain

import (
	"fmt"
	"strings"
)

// IdentifierLength is the exact number of digits in a valid identifier.
const IdentifierLength = 12

// FilenameSuffix is appended to the identifier to form the download filename.
const FilenameSuffix = "_specification.pdf"

// Identifier is a 12-digit numeric product code (a "12NC").
// Use ParseIdentifier to construct one; a zero value is never valid.
type Identifier string

// ParseIdentifier validates raw against the identifier shape contract:
// exactly 12 characters, all ASCII digits. It performs no normalisation —
// stripping separators or whitespace is the caller's responsibility
// (see Normalize).
func ParseIdentifier(raw string) (Identifier, error) {
	if len(raw) != IdentifierLength {
		return "", fmt.Errorf("%w: expected %d digits, got %d characters", ErrInvalidIdentifier, IdentifierLength, len(raw))
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return "", fmt.Errorf("%w: %q is not a digit", ErrInvalidIdentifier, raw[i])
		}
	}
	return Identifier(raw), nil
}

// Normalize strips every non-digit character from raw. It is a convenience
// for collaborators accepting user input with separators (e.g.
// "9114 0151 0832"); the result must still pass ParseIdentifier.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			b.WriteByte(raw[i])
		}
	}
	return b.String()
}

// String returns the identifier digits.
func (id Identifier) String() string {
	return string(id)
}

// Filename returns the canonical download filename for this identifier,
// e.g. "911401510832_specification.pdf".
func (id Identifier) Filename() string {
	return string(id) + FilenameSuffix
}
