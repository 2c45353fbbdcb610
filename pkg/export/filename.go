package export

import (
	"regexp"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultBaseName is used when a suggested name sanitizes to nothing.
const DefaultBaseName = "extrato-cliente"

var (
	unsafeRun = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)
	dashRun   = regexp.MustCompile(`-+`)
)

// combining diacritical marks block
var diacritic = runes.Predicate(func(r rune) bool {
	return r >= 0x0300 && r <= 0x036f
})

// SanitizeFileName turns a suggested document name into a portable base name:
// accents are stripped, anything outside [a-zA-Z0-9._-] collapses to a
// single dash and the result is lower-cased.
func SanitizeFileName(value string) string {
	t := transform.Chain(norm.NFD, runes.Remove(diacritic))
	stripped, _, err := transform.String(t, value)
	if err != nil {
		stripped = value
	}

	s := unsafeRun.ReplaceAllString(stripped, "-")
	s = dashRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return strings.ToLower(s)
}

// FileName sanitizes base and appends ext, falling back to DefaultBaseName.
func FileName(base, ext string) string {
	name := SanitizeFileName(base)
	if name == "" {
		name = DefaultBaseName
	}
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return name
	}
	return name + "." + ext
}
