package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/username/sheetfolio/src/database"
	"github.com/username/sheetfolio/src/parsers"
	"github.com/username/sheetfolio/src/processors"
)

// Commands returns every sheetctl subcommand, writing results to out.
func Commands(out io.Writer) []subcommands.Command {
	return []subcommands.Command{
		&summaryCmd{out: out},
		&ordersCmd{out: out},
		&positionsCmd{out: out},
		&symbolsCmd{out: out},
		&importCmd{out: out},
	}
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}

type summaryCmd struct {
	out io.Writer
	in  inputFlags
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print the cash flow, status and summary charts of a transactions sheet" }
func (*summaryCmd) Usage() string {
	return `sheetctl summary -f <file> [-sheet <name>] [-table <name>]

  Normalizes every row into a transaction and prints the dashboard aggregates.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) { c.in.register(f) }

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rows, err := c.in.rows(ctx)
	if err != nil {
		return fail(err)
	}
	txs := parsers.NewTransactionParser().Parse(rows)
	if err := writeJSON(c.out, processors.NewDefaultDashboardProcessor().Build(txs)); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type ordersCmd struct {
	out    io.Writer
	in     inputFlags
	query  processors.OrderQuery
	ledger bool
}

func (*ordersCmd) Name() string     { return "orders" }
func (*ordersCmd) Synopsis() string { return "filter, sort and page the orders of an orders sheet" }
func (*ordersCmd) Usage() string {
	return `sheetctl orders -f <file> [-symbol s] [-status s] [-start d] [-end d] [-sort key] [-desc] [-page n] [-per-page n]
sheetctl orders -f <file> -ledger

  Prints one page of orders with buy/sell totals, or the buy/sell ledger with -ledger.
`
}

func (c *ordersCmd) SetFlags(f *flag.FlagSet) {
	c.in.register(f)
	f.StringVar(&c.query.Symbol, "symbol", "", "Keep orders whose symbol contains this text.")
	f.StringVar(&c.query.Status, "status", "", "Keep orders whose status contains this text.")
	f.StringVar(&c.query.StartDate, "start", "", "Inclusive lower bound on the order date text.")
	f.StringVar(&c.query.EndDate, "end", "", "Inclusive upper bound on the order date text.")
	f.StringVar(&c.query.Sort, "sort", "", "Sort key (id, customer, date, status, total, side, symbol).")
	f.BoolVar(&c.query.Desc, "desc", false, "Sort descending.")
	f.IntVar(&c.query.Page, "page", 1, "Page number, starting at 1.")
	f.IntVar(&c.query.PerPage, "per-page", processors.DefaultPerPage, "Orders per page.")
	f.BoolVar(&c.ledger, "ledger", false, "Print the buy/sell ledger instead of a page.")
}

func (c *ordersCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rows, err := c.in.rows(ctx)
	if err != nil {
		return fail(err)
	}
	var result any
	if c.ledger {
		result = processors.NewLedgerProcessor().Split(parsers.NewTradeParser().Parse(rows))
	} else {
		result = processors.NewOrderQueryProcessor().Query(parsers.NewOrderParser().Parse(rows), c.query)
	}
	if err := writeJSON(c.out, result); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type positionsCmd struct {
	out io.Writer
	in  inputFlags
}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "print the open positions of a positions sheet" }
func (*positionsCmd) Usage() string {
	return `sheetctl positions -f <file>

  Closed, sold and zero-quantity rows are left out.
`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) { c.in.register(f) }

func (c *positionsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rows, err := c.in.rows(ctx)
	if err != nil {
		return fail(err)
	}
	if err := writeJSON(c.out, parsers.NewPositionParser().Parse(rows)); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type symbolsCmd struct {
	out io.Writer
	in  inputFlags
}

func (*symbolsCmd) Name() string     { return "symbols" }
func (*symbolsCmd) Synopsis() string { return "list the distinct symbols of an orders sheet" }
func (*symbolsCmd) Usage() string {
	return `sheetctl symbols -f <file>
`
}

func (c *symbolsCmd) SetFlags(f *flag.FlagSet) { c.in.register(f) }

func (c *symbolsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rows, err := c.in.rows(ctx)
	if err != nil {
		return fail(err)
	}
	if err := writeJSON(c.out, processors.UniqueSymbols(rows)); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type importCmd struct {
	out    io.Writer
	in     inputFlags
	dbPath string
	into   string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "copy the rows of a file or Google Sheet into a SQLite table" }
func (*importCmd) Usage() string {
	return `sheetctl import (-f <file> | -spreadsheet <id> [-gid <gid>]) -db <path> -into <table>

  Creates the table when needed, adding a TEXT column for every new header.
  The server reads the table when DATABASE_PATH is set.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	c.in.register(f)
	f.StringVar(&c.dbPath, "db", "sheetfolio.db", "SQLite database to write to.")
	f.StringVar(&c.into, "into", "", "Destination table.")
}

func (c *importCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.into == "" {
		return fail(fmt.Errorf("-into is required"))
	}
	rows, err := c.in.rows(ctx)
	if err != nil {
		return fail(err)
	}
	db, err := database.Open(c.dbPath)
	if err != nil {
		return fail(err)
	}
	defer db.Close()

	n, err := database.ImportRows(ctx, db, c.into, rows)
	if err != nil {
		return fail(err)
	}
	if err := writeJSON(c.out, map[string]any{"database": c.dbPath, "table": c.into, "rows": n}); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
