package sources

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/username/sheetfolio/src/models"
)

const utf8BOM = "\uFEFF"

// ReadCSV reads a CSV document whose first record is the header row.
// Short records are padded, blank records are skipped.
func ReadCSV(r io.Reader) ([]models.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err == io.EOF {
		return []models.Row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], utf8BOM)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read all CSV records: %w", err)
	}

	rows := make([]models.Row, 0, len(records))
	for _, record := range records {
		row := models.NewRow(headers, record)
		if row.IsBlank() {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// CSVFileSource reads rows from a CSV file on disk.
type CSVFileSource struct {
	Path string
}

func (s *CSVFileSource) Name() string { return "csv:" + s.Path }

func (s *CSVFileSource) Fetch(ctx context.Context) ([]models.Row, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file %s: %w", s.Path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}
