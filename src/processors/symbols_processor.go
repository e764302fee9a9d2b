package processors

import (
	"sort"

	"github.com/username/sheetfolio/src/models"
	"github.com/username/sheetfolio/src/resolver"
)

// UniqueSymbols returns the sorted distinct symbols found in order rows.
// Blank cells and the "N/A" placeholder are skipped.
func UniqueSymbols(rows []models.Row) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		if sym := resolver.String(row, resolver.SymbolListing, ""); sym != "" {
			seen[sym] = struct{}{}
		}
	}
	symbols := make([]string, 0, len(seen))
	for s := range seen {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}
