package sources

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/username/sheetfolio/src/models"
)

// ReadXLSX reads one worksheet of an XLSX workbook; an empty sheet name selects the first one.
func ReadXLSX(r io.Reader, sheet string) ([]models.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return workbookRows(f, sheet)
}

func workbookRows(f *excelize.File, sheet string) ([]models.Row, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return []models.Row{}, nil
		}
		sheet = sheets[0]
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", sheet, err)
	}
	return recordsToRows(records), nil
}

// recordsToRows treats the first record as the header row.
func recordsToRows(records [][]string) []models.Row {
	rows := []models.Row{}
	if len(records) == 0 {
		return rows
	}
	headers := records[0]
	for _, record := range records[1:] {
		row := models.NewRow(headers, record)
		if row.IsBlank() {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// XLSXFileSource reads rows from a worksheet of an XLSX file on disk.
type XLSXFileSource struct {
	Path  string
	Sheet string
}

func (s *XLSXFileSource) Name() string { return "xlsx:" + s.Path }

func (s *XLSXFileSource) Fetch(ctx context.Context) ([]models.Row, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", s.Path, err)
	}
	defer f.Close()
	return workbookRows(f, s.Sheet)
}
