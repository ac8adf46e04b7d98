// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/unicode/norm"
)

// ASCII transliterates s to ASCII. Input is composed first so decomposed
// accents transliterate the same as precomposed letters.
func ASCII(s string) string {
	return unidecode.Unidecode(norm.NFC.String(s))
}

// Make returns the slug for a name: ASCII, lowercase, spaces replaced with hyphens.
// Other punctuation is kept as is.
func Make(name string) string {
	return strings.ReplaceAll(strings.ToLower(ASCII(name)), " ", "-")
}
