package parsers

import (
	"github.com/username/sheetfolio/src/models"
)

// Parser is the kind-agnostic view of a normalizer, used where the record kind
// is only known at runtime (uploads, the CLI).
type Parser interface {
	Kind() string
	ParseRows(rows []models.Row) any
}
