package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/username/sheetfolio/src/database"
	"github.com/username/sheetfolio/src/models"
	"github.com/username/sheetfolio/src/sources"
)

// inputFlags selects where a command reads its rows from: a local file, or a
// Google Sheet when -spreadsheet is given.
type inputFlags struct {
	file        string
	sheet       string
	table       string
	spreadsheet string
	gid         string
	public      bool
	credentials string
	timeout     time.Duration
}

func (in *inputFlags) register(f *flag.FlagSet) {
	f.StringVar(&in.file, "f", "", "Input file (.csv, .xlsx, .json, .db, .sqlite).")
	f.StringVar(&in.sheet, "sheet", "", "Worksheet name for .xlsx input (defaults to the first sheet).")
	f.StringVar(&in.table, "table", "", "Table name for SQLite input.")
	f.StringVar(&in.spreadsheet, "spreadsheet", "", "Google spreadsheet id to read instead of a file.")
	f.StringVar(&in.gid, "gid", "", "Worksheet gid of the Google spreadsheet.")
	f.BoolVar(&in.public, "public", true, "Try the public CSV export before the service account.")
	f.StringVar(&in.credentials, "credentials", "credentials.json", "Service account credentials file.")
	f.DurationVar(&in.timeout, "timeout", sources.DefaultFetchTimeout, "Fetch timeout for Google Sheets.")
}

// source opens the configured input. The returned closer releases any database handle.
func (in *inputFlags) source(ctx context.Context) (sources.Source, func(), error) {
	noop := func() {}
	if in.spreadsheet != "" {
		cfg := sources.SheetConfig{
			UsePublicAccess: in.public,
			CredentialsFile: in.credentials,
			Timeout:         in.timeout,
		}
		return sources.NewSheetSource(ctx, cfg, sources.SheetRef{SpreadsheetID: in.spreadsheet, WorksheetGID: in.gid}), noop, nil
	}
	if in.file == "" {
		return nil, noop, errors.New("an input is required: use -f <file> or -spreadsheet <id>")
	}

	switch ext := strings.ToLower(filepath.Ext(in.file)); ext {
	case ".csv":
		return &sources.CSVFileSource{Path: in.file}, noop, nil
	case ".xlsx":
		return &sources.XLSXFileSource{Path: in.file, Sheet: in.sheet}, noop, nil
	case ".json":
		return &sources.JSONFileSource{Path: in.file}, noop, nil
	case ".db", ".sqlite", ".sqlite3":
		if in.table == "" {
			return nil, noop, fmt.Errorf("-table is required for SQLite input %s", in.file)
		}
		db, err := database.Open(in.file)
		if err != nil {
			return nil, noop, err
		}
		return database.NewTableSource(db, in.table), func() { db.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unsupported input file type %q", ext)
	}
}

func (in *inputFlags) rows(ctx context.Context) ([]models.Row, error) {
	src, closeFn, err := in.source(ctx)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	rows, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", src.Name(), err)
	}
	return rows, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
