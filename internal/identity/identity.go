package identity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Unknown is the name reported for faces that cannot be resolved to an
// enrolled identity.
const Unknown = "Unknown"

// RemoveDiacritics removes diacritical marks from a string (e.g., "Jiří" -> "Jiri").
func RemoveDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// Normalize turns a display name into the key used for dataset partitions,
// registry entries and ledger rows: diacritics stripped, surrounding space
// trimmed, inner whitespace runs replaced by a single underscore.
func Normalize(name string) string {
	name = RemoveDiacritics(name)
	name = strings.TrimSpace(name)
	return strings.Join(strings.Fields(name), "_")
}

// Display reverses the whitespace replacement for presentation ("Jan_Novak"
// -> "Jan Novak"). Diacritics are not recoverable.
func Display(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}
