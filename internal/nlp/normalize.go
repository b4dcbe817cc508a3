// Package nlp implements the Portuguese command interpreter: text
// normalization, the intent classifier and the entity extractors (dates,
// times, locations, amounts, categories, event names).
//
// Everything in this package is pure over its inputs. The only ambient
// dependency, "now", comes in through the Clock seam so extraction is
// deterministic under test.
package nlp

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, drops the combining marks and recomposes.
// "ç" survives as "c", "ã" as "a", matching the original app's behavior.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases, trims and removes diacritics. Idempotent; empty in,
// empty out. Every extractor and the classifier operate on its output.
func Normalize(text string) string {
	out, _, err := transform.String(stripMarks, text)
	if err != nil {
		// transform only fails on malformed UTF-8; fall back to the raw text
		// so a bad byte never turns a command into an empty string.
		out = text
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// TitleCase collapses whitespace and uppercases the first letter of each
// word. Used for location fragments ("parque barigui" -> "Parque Barigui").
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = upperFirst(w)
	}
	return strings.Join(words, " ")
}

// upperFirst capitalizes only the first rune, leaving the rest untouched.
func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// capitalizeSentence uppercases the first letter of the whole string only.
func capitalizeSentence(s string) string {
	return upperFirst(s)
}

// collapseSpaces squeezes runs of whitespace into single spaces and trims.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
