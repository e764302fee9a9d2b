package validation

import (
	"strings"
	"unicode"
)

const formulaChars = "=+-@\t\r"

// SanitizeForFormulaInjection prefixes a single quote to text that a spreadsheet
// would otherwise evaluate as a formula. Leading spaces do not hide the formula.
func SanitizeForFormulaInjection(s string) string {
	trimmed := strings.TrimLeft(s, " ")
	if trimmed != "" && strings.ContainsRune(formulaChars, rune(trimmed[0])) {
		return "'" + s
	}
	return s
}

// StripUnprintable removes non-printable characters, allowing common whitespace
// like space, tab, newline, and carriage return.
func StripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1
	}, s)
}

// SanitizeCell makes a free-text value safe to write into an exported CSV cell.
func SanitizeCell(s string) string {
	return SanitizeForFormulaInjection(StripUnprintable(s))
}
