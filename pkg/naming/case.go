// Package naming converts manifest names into JavaScript identifiers and
// holds the words that generated props may never use.
package naming

import (
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
)

// normalizeSeparators rewrites every rune that cannot appear in an
// identifier to '-', which strcase treats as a word boundary.
// "item:select" → "item-select".
func normalizeSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '-'
	}, s)
}

// ToPascalCase converts a hyphen, underscore, colon or dot separated name to
// PascalCase. "slAfterShow" becomes "SlAfterShow".
func ToPascalCase(s string) string {
	return strcase.ToCamel(normalizeSeparators(s))
}

// ToCamelCase converts a separated name to camelCase.
// e.g., "aria-label" → "ariaLabel", "max_length" → "maxLength".
func ToCamelCase(s string) string {
	return strcase.ToLowerCamel(normalizeSeparators(s))
}

// IsIdentifier reports whether s can be used as a bare JavaScript identifier
// or dotted property name.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
