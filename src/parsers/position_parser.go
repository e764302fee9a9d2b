package parsers

import (
	"strings"

	"github.com/username/sheetfolio/src/models"
	"github.com/username/sheetfolio/src/resolver"
)

var closedMarkers = []string{"closed", "sold", "exit"}

type positionParser struct{}

func NewPositionParser() PositionParser {
	return &positionParser{}
}

func (p *positionParser) Kind() string { return KindPositions }

func (p *positionParser) Parse(rows []models.Row) []models.Position {
	positions := make([]models.Position, 0, len(rows))
	for _, row := range rows {
		if pos, ok := NormalizePosition(row); ok {
			positions = append(positions, pos)
		}
	}
	return positions
}

func (p *positionParser) ParseRows(rows []models.Row) any {
	return p.Parse(rows)
}

// NormalizePosition builds a Position from a holdings row.
// ok is false for closed positions and rows without a symbol.
func NormalizePosition(row models.Row) (models.Position, bool) {
	f := resolver.Position
	symbol := resolver.String(row, f.Symbol, "")
	if symbol == "" {
		return models.Position{}, false
	}

	quantity := resolver.Amount(row, f.Quantity, 0)
	if quantity <= 0 || isClosed(resolver.String(row, f.Status, "")) {
		return models.Position{}, false
	}

	return models.Position{
		Symbol:    symbol,
		Quantity:  quantity,
		CostBasis: resolver.Amount(row, f.CostBasis, 0),
	}, true
}

func isClosed(status string) bool {
	s := strings.ToLower(status)
	for _, m := range closedMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
