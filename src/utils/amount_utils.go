package utils

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var amountReplacer = strings.NewReplacer("$", "", ",", "", " ", "", "+", "")

// ParseAmount converts a money cell such as "$1,234.50", "+20" or "(50.00)" to a float.
// Parentheses around the whole value mean a negative amount.
// Empty or malformed input yields 0; a bad cell must never stop a sheet from loading.
func ParseAmount(raw string) float64 {
	d, ok := ParseDecimal(raw)
	if !ok {
		return 0
	}
	f, _ := d.Float64()
	return f
}

// ParseDecimal is ParseAmount returning the exact decimal value and whether parsing succeeded.
func ParseDecimal(raw string) (decimal.Decimal, bool) {
	cleaned := amountReplacer.Replace(strings.TrimSpace(raw))
	negative := false
	if len(cleaned) >= 2 && strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = cleaned[1 : len(cleaned)-1]
	}
	cleaned = stripDigitUnderscores(cleaned)
	if cleaned == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	// Values past the float64 range would reach the accumulators as Inf.
	if f, _ := d.Float64(); math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// stripDigitUnderscores drops single underscores used as digit grouping ("1_000").
// Any other underscore is kept so the value fails to parse.
func stripDigitUnderscores(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '_' && i > 0 && i < len(s)-1 && isDigit(s[i-1]) && isDigit(s[i+1]) {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
