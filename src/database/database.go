package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/username/sheetfolio/src/logger"
	"github.com/username/sheetfolio/src/models"
)

var DB *sql.DB

// InitDB opens the SQLite database at databasePath and stores it in DB.
func InitDB(databasePath string) error {
	db, err := Open(databasePath)
	if err != nil {
		return err
	}
	DB = db
	if logger.L != nil {
		logger.L.Info("Database opened", "databasePath", databasePath)
	}
	return nil
}

// Open opens and pings a SQLite database.
func Open(databasePath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", databasePath, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach database at %s: %w", databasePath, err)
	}
	return db, nil
}

// TableSource serves the rows of a SQLite table, columns in declaration order.
type TableSource struct {
	DB    *sql.DB
	Table string
}

func NewTableSource(db *sql.DB, table string) *TableSource {
	return &TableSource{DB: db, Table: table}
}

func (s *TableSource) Name() string { return "sqlite:" + s.Table }

func (s *TableSource) Fetch(ctx context.Context) ([]models.Row, error) {
	query := fmt.Sprintf("SELECT * FROM %s ORDER BY rowid", quoteIdent(s.Table))
	rs, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", s.Table, err)
	}
	defer rs.Close()

	columns, err := rs.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", s.Table, err)
	}

	rows := []models.Row{}
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rs.Next() {
		if err := rs.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row of %s: %w", s.Table, err)
		}
		cells := make([]string, len(values))
		for i, v := range values {
			cells[i] = cellString(v)
		}
		row := models.NewRow(columns, cells)
		if !row.IsBlank() {
			rows = append(rows, row)
		}
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows of %s: %w", s.Table, err)
	}
	logger.FromContext(ctx).Debug("Fetched table rows", "table", s.Table, "rows", len(rows))
	return rows, nil
}

// ImportRows stores rows in table as TEXT columns, creating the table and adding
// missing columns as needed. A repeated header keeps its first value.
func ImportRows(ctx context.Context, db *sql.DB, table string, rows []models.Row) (int, error) {
	columns := importColumns(rows)
	if len(columns) == 0 {
		return 0, nil
	}
	if err := ensureTable(ctx, db, table, columns); err != nil {
		return 0, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer tx.Rollback()

	quoted := make([]string, len(columns))
	marks := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdent(c)
		marks[i] = "?"
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(quoted, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return 0, fmt.Errorf("error preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		args := make([]any, len(columns))
		for j, c := range columns {
			v, _ := row.Get(c)
			args[j] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("error inserting row %d into %s: %w", i+1, table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing rows: %w", err)
	}
	logger.FromContext(ctx).Info("Imported rows", "table", table, "rows", len(rows), "columns", len(columns))
	return len(rows), nil
}

// ListTables returns the user tables of the database in name order.
func ListTables(ctx context.Context, db *sql.DB) ([]string, error) {
	rs, err := db.QueryContext(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rs.Close()

	tables := []string{}
	for rs.Next() {
		var name string
		if err := rs.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rs.Err()
}

func importColumns(rows []models.Row) []string {
	var columns []string
	seen := make(map[string]bool)
	for _, row := range rows {
		for _, c := range row {
			if c.Header == "" || seen[c.Header] {
				continue
			}
			seen[c.Header] = true
			columns = append(columns, c.Header)
		}
	}
	return columns
}

func ensureTable(ctx context.Context, db *sql.DB, table string, columns []string) error {
	existing, err := tableColumns(ctx, db, table)
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		defs := make([]string, len(columns))
		for i, c := range columns {
			defs[i] = quoteIdent(c) + " TEXT"
		}
		stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", quoteIdent(table), strings.Join(defs, ", "))
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table, err)
		}
		return nil
	}

	for _, c := range columns {
		if existing[c] {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s TEXT", quoteIdent(table), quoteIdent(c))
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error adding %q column to %s: %w", c, table, err)
		}
		logger.FromContext(ctx).Info("Added column", "table", table, "column", c)
	}
	return nil
}

// tableColumns reads PRAGMA table_info; an empty map means the table does not exist.
func tableColumns(ctx context.Context, db *sql.DB, table string) (map[string]bool, error) {
	rs, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return nil, fmt.Errorf("error querying table schema for %s: %w", table, err)
	}
	defer rs.Close()

	columns := make(map[string]bool)
	for rs.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notnull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rs.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("error scanning column info for %s: %w", table, err)
		}
		columns[name] = true
	}
	return columns, rs.Err()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format("2006-01-02")
	default:
		return fmt.Sprint(t)
	}
}
