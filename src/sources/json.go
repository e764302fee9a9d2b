package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/username/sheetfolio/src/models"
)

// ReadJSON decodes a JSON array of objects, such as the output of /api/raw.
// Key order inside each object is kept.
func ReadJSON(r io.Reader) ([]models.Row, error) {
	var rows []models.Row
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode JSON rows: %w", err)
	}
	if rows == nil {
		rows = []models.Row{}
	}
	return rows, nil
}

// JSONFileSource reads rows from a JSON file on disk.
type JSONFileSource struct {
	Path string
}

func (s *JSONFileSource) Name() string { return "json:" + s.Path }

func (s *JSONFileSource) Fetch(ctx context.Context) ([]models.Row, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open JSON file %s: %w", s.Path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
