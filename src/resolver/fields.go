package resolver

var (
	idExclude   = []string{"side"}
	dateExclude = []string{"time-in-force"}
)

// Transaction columns of a transfer/ledger sheet.
var Transaction = struct {
	AmountNumeric Field
	Amount        Field
	Type          Field
	Date          Field
	Status        Field
}{
	AmountNumeric: Field{Name: "amount", Keywords: []string{"amount numeric"}, Filter: NonEmpty},
	Amount:        Field{Name: "amount", Keywords: []string{"amount"}, Filter: NonEmpty},
	Type:          Field{Name: "type", Keywords: []string{"type"}, Filter: NonEmpty},
	Date:          Field{Name: "date", Keywords: []string{"transfer date", "transfer initiated", "date"}, Exclude: dateExclude, Filter: NonEmpty},
	Status:        Field{Name: "status", Keywords: []string{"status"}, Filter: NonEmpty},
}

// Order columns of the orders view.
var Order = struct {
	ID       Field
	Customer Field
	Status   Field
	Date     Field
	Total    Field
	Price    Field
	Quantity Field
}{
	ID:       Field{Name: "id", Keywords: []string{"order id", "orderid", "id", "trade id", "transaction id"}, Exclude: idExclude, Filter: NonEmpty},
	Customer: Field{Name: "customer", Keywords: []string{"customer", "client", "account", "name"}, Filter: NonEmpty},
	Status:   Field{Name: "status", Keywords: []string{"status", "state"}, Filter: NonEmpty},
	Date:     Field{Name: "date", Keywords: []string{"filled time", "placed time", "order date", "date", "timestamp"}, Exclude: dateExclude, Filter: NonEmpty},
	Total:    Field{Name: "total", Keywords: []string{"amount", "value"}, Exclude: []string{"qty", "quantity", "shares"}, Filter: NonZero},
	Price:    Field{Name: "price", Keywords: []string{"price"}, Filter: NonZero},
	Quantity: Field{Name: "quantity", Keywords: []string{"quantity", "qty", "shares", "filled"}, Filter: NonZero},
}

// OrderSymbolHeaders and OrderSideHeaders are literal header names, not keywords.
var (
	OrderSymbolHeaders = []string{"Symbol", "symbol"}
	OrderSideHeaders   = []string{"Side", "side"}
)

// Position columns of a holdings sheet.
var Position = struct {
	Symbol    Field
	Quantity  Field
	CostBasis Field
	Status    Field
}{
	Symbol:    Field{Name: "symbol", Keywords: []string{"symbol", "ticker", "stock", "instrument", "security", "name"}, Filter: NonEmpty},
	Quantity:  Field{Name: "quantity", Keywords: []string{"quantity", "qty", "shares", "share", "position"}, Filter: NonZero},
	CostBasis: Field{Name: "cost_basis", Keywords: []string{"cost basis", "avg price", "average price", "cost", "basis"}, Filter: NonZero},
	Status:    Field{Name: "status", Keywords: []string{"status", "state"}},
}

// Trade columns of the buy/sell ledger. The first match wins, blank or not.
var Trade = struct {
	ID       Field
	Symbol   Field
	Side     Field
	Quantity Field
	Price    Field
	Total    Field
	Status   Field
	Date     Field
}{
	ID:       Field{Name: "id", Keywords: []string{"order id", "orderid", "trade id", "id"}, Exclude: idExclude},
	Symbol:   Field{Name: "symbol", Keywords: []string{"symbol", "ticker", "stock", "instrument"}},
	Side:     Field{Name: "side", Keywords: []string{"side", "action", "type", "buy_sell"}},
	Quantity: Field{Name: "quantity", Keywords: []string{"quantity", "qty", "shares", "filled"}},
	Price:    Field{Name: "price", Keywords: []string{"price"}},
	Total:    Field{Name: "total", Keywords: []string{"amount", "value", "total"}},
	Status:   Field{Name: "status", Keywords: []string{"status", "state"}},
	Date:     Field{Name: "date", Keywords: []string{"date", "time", "timestamp"}, Exclude: dateExclude},
}

// SymbolListing finds the symbol column when collecting distinct symbols.
var SymbolListing = Field{Name: "symbol", Keywords: []string{"symbol", "ticker", "stock", "instrument"}, Filter: NotIn("N/A")}
