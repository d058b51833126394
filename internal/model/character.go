package model

import (
	"strings"
	"unicode"

	"github.com/Veraticus/resetwatch/internal/common"
)

// DefaultCharacter is the fallback namespace and the seed for new characters.
const DefaultCharacter = "Default"

// SanitizeCharacterID reduces a character display name to a storage-safe
// identifier: letters, digits, spaces, hyphens and underscores survive and
// trailing whitespace is trimmed.
func SanitizeCharacterID(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.TrimRightFunc(b.String(), unicode.IsSpace)
}

// NormalizeCharacterName turns user input into the identifier a new character
// is stored under.
func NormalizeCharacterName(name string) (string, error) {
	id := strings.TrimSpace(SanitizeCharacterID(name))
	if id == "" {
		return "", common.ErrInvalidCharacter
	}
	return id, nil
}
