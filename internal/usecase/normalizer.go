package usecase

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/clinicprime/notelens/internal/domain"
)

// stripMarks decomposes compatibility characters and drops combining marks ("é" -> "e", "ﬁ" -> "fi")
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// JoinFields concatenates the texts of the source fields with a single space
func JoinFields(fields []domain.SourceField) string {
	texts := make([]string, len(fields))
	for i, f := range fields {
		texts[i] = f.Text
	}
	return strings.Join(texts, " ")
}

// Fold strips diacritics, uppercases and collapses whitespace, keeping punctuation.
// Normalize(Fold(s)) == Normalize(s).
func Fold(s string) string {
	if s == "" {
		return ""
	}
	stripped, _, err := transform.String(stripMarks, s)
	if err != nil {
		stripped = s
	}
	return strings.Join(strings.Fields(strings.ToUpper(stripped)), " ")
}

// Normalize canonicalizes free text for matching: diacritics stripped, uppercased,
// every character outside [A-Z0-9+] turned into a space, whitespace collapsed and trimmed.
// A '.' or ',' between two digits is kept as the decimal separator '.'.
// Normalize is total and idempotent.
func Normalize(s string) string {
	folded := Fold(s)
	if folded == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingSpace := false

	for i := 0; i < len(folded); i++ {
		c := folded[i]
		keep := isUpperAlnum(c) || c == '+'
		if (c == '.' || c == ',') && i > 0 && i+1 < len(folded) && isDigit(folded[i-1]) && isDigit(folded[i+1]) {
			c = '.'
			keep = true
		}

		if !keep {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteByte(c)
	}

	return b.String()
}

// NormalizeFields concatenates the source fields and normalizes the result
func NormalizeFields(fields []domain.SourceField) string {
	return Normalize(JoinFields(fields))
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isUpperAlnum(c byte) bool {
	return isDigit(c) || (c >= 'A' && c <= 'Z')
}
