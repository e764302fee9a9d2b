package services

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/username/sheetfolio/src/logger"
	"github.com/username/sheetfolio/src/models"
	"github.com/username/sheetfolio/src/parsers"
	"github.com/username/sheetfolio/src/processors"
	"github.com/username/sheetfolio/src/sources"
)

type uploadServiceImpl struct {
	dashboard processors.DashboardProcessor
}

func NewUploadService(dashboard processors.DashboardProcessor) UploadService {
	return &uploadServiceImpl{dashboard: dashboard}
}

func (s *uploadServiceImpl) ProcessUpload(fileReader io.Reader, filename, kind string) (*UploadResult, error) {
	startTime := time.Now()
	logger.L.Info("ProcessUpload START", "filename", filename, "kind", kind)

	parser, err := parsers.GetParser(kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	rows, err := ReadRows(fileReader, filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	result := &UploadResult{
		Kind:     parser.Kind(),
		RowCount: len(rows),
		Records:  parser.ParseRows(rows),
	}
	if txs, ok := result.Records.([]models.Transaction); ok {
		d := s.dashboard.Build(txs)
		result.Dashboard = &d
	}

	logger.L.Info("ProcessUpload END", "filename", filename, "kind", result.Kind, "rows", len(rows), "duration", time.Since(startTime))
	return result, nil
}

// ReadRows decodes a file into rows, picking the reader by file extension.
func ReadRows(r io.Reader, filename string) ([]models.Row, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		return sources.ReadCSV(r)
	case ".xlsx":
		return sources.ReadXLSX(r, "")
	case ".json":
		return sources.ReadJSON(r)
	default:
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}
}
