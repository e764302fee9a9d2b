package parsers

import (
	"fmt"
	"strings"
)

const (
	KindTransactions = "transactions"
	KindOrders       = "orders"
	KindPositions    = "positions"
	KindTrades       = "trades"
)

// Kinds lists the record kinds GetParser knows about.
var Kinds = []string{KindTransactions, KindOrders, KindPositions, KindTrades}

func GetParser(kind string) (Parser, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindTransactions:
		return &transactionParser{}, nil
	case KindOrders:
		return &orderParser{}, nil
	case KindPositions:
		return &positionParser{}, nil
	case KindTrades:
		return &tradeParser{}, nil
	default:
		return nil, fmt.Errorf("no parser available for kind: %s", kind)
	}
}
