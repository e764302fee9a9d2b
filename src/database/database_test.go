package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/sheetfolio/src/models"
)

func openTestDB(t *testing.T) *TableSource {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewTableSource(db, "orders")
}

func TestImportAndFetchKeepOrder(t *testing.T) {
	src := openTestDB(t)
	ctx := context.Background()

	rows := []models.Row{
		models.NewRow([]string{"Symbol", "Side", "Total Value"}, []string{"DVLT", "BUY", "39812.49"}),
		models.NewRow([]string{"Symbol", "Side", "Total Value"}, []string{"AAPL", "SELL", "10"}),
	}
	n, err := ImportRows(ctx, src.DB, src.Table, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := src.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestImportAddsMissingColumns(t *testing.T) {
	src := openTestDB(t)
	ctx := context.Background()

	_, err := ImportRows(ctx, src.DB, src.Table, []models.Row{models.NewRow([]string{"Symbol"}, []string{"A"})})
	require.NoError(t, err)
	_, err = ImportRows(ctx, src.DB, src.Table, []models.Row{models.NewRow([]string{"Symbol", "Status"}, []string{"B", "Filled"})})
	require.NoError(t, err)

	got, err := src.Fetch(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"Symbol", "Status"}, got[0].Headers())
	v, _ := got[0].Get("Status")
	assert.Equal(t, "", v)
	v, _ = got[1].Get("Status")
	assert.Equal(t, "Filled", v)
}

func TestFetchConvertsTypedColumns(t *testing.T) {
	src := openTestDB(t)
	ctx := context.Background()

	_, err := src.DB.Exec(`CREATE TABLE "orders" ("Qty" INTEGER, "Price" REAL, "Note" TEXT)`)
	require.NoError(t, err)
	_, err = src.DB.Exec(`INSERT INTO "orders" VALUES (3, 1.5, NULL), (NULL, NULL, NULL)`)
	require.NoError(t, err)

	got, err := src.Fetch(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1, "all-null row is skipped")
	assert.Equal(t, models.Row{{Header: "Qty", Value: "3"}, {Header: "Price", Value: "1.5"}, {Header: "Note", Value: ""}}, got[0])
}

func TestQuotedTableNames(t *testing.T) {
	src := openTestDB(t)
	src.Table = `my "orders" table`
	ctx := context.Background()

	_, err := ImportRows(ctx, src.DB, src.Table, []models.Row{models.NewRow([]string{"a b"}, []string{"1"})})
	require.NoError(t, err)

	tables, err := ListTables(ctx, src.DB)
	require.NoError(t, err)
	assert.Equal(t, []string{`my "orders" table`}, tables)

	got, err := src.Fetch(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestFetchMissingTable(t *testing.T) {
	src := openTestDB(t)
	_, err := src.Fetch(context.Background())
	assert.Error(t, err)
}

func TestImportNothing(t *testing.T) {
	src := openTestDB(t)
	n, err := ImportRows(context.Background(), src.DB, src.Table, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
