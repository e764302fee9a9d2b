package sources

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/username/sheetfolio/src/logger"
	"github.com/username/sheetfolio/src/models"
)

var sheetScopes = []string{sheets.SpreadsheetsReadonlyScope}

// ServiceAccountSource reads a worksheet through the Sheets API.
type ServiceAccountSource struct {
	Ref     SheetRef
	service *sheets.Service
}

// NewServiceAccountSource builds a Sheets API client from service account JSON.
func NewServiceAccountSource(ctx context.Context, ref SheetRef, credentialsJSON []byte, opts ...option.ClientOption) (*ServiceAccountSource, error) {
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, sheetScopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}
	opts = append([]option.ClientOption{option.WithCredentials(creds)}, opts...)
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &ServiceAccountSource{Ref: ref, service: svc}, nil
}

// NewServiceAccountSourceWithService wraps an existing Sheets API client.
func NewServiceAccountSourceWithService(ref SheetRef, svc *sheets.Service) *ServiceAccountSource {
	return &ServiceAccountSource{Ref: ref, service: svc}
}

func (s *ServiceAccountSource) Name() string { return "sheets-api:" + s.Ref.SpreadsheetID }

func (s *ServiceAccountSource) Fetch(ctx context.Context) ([]models.Row, error) {
	title, err := s.worksheetTitle(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.service.Spreadsheets.Values.Get(s.Ref.SpreadsheetID, quoteSheetTitle(title)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read values of %s/%s: %w", s.Ref.SpreadsheetID, title, err)
	}

	records := make([][]string, 0, len(resp.Values))
	for _, vals := range resp.Values {
		record := make([]string, len(vals))
		for i, v := range vals {
			record[i] = cellString(v)
		}
		records = append(records, record)
	}
	rows := recordsToRows(records)
	if len(rows) == 0 {
		return nil, fmt.Errorf("spreadsheet %s: %w", s.Ref.SpreadsheetID, ErrEmptySheet)
	}
	logger.FromContext(ctx).Info("Fetched sheet via service account", "spreadsheetID", s.Ref.SpreadsheetID, "worksheet", title, "rows", len(rows))
	return rows, nil
}

// worksheetTitle maps the configured gid to a worksheet title, falling back to the first worksheet.
func (s *ServiceAccountSource) worksheetTitle(ctx context.Context) (string, error) {
	ss, err := s.service.Spreadsheets.Get(s.Ref.SpreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to open spreadsheet %s: %w", s.Ref.SpreadsheetID, err)
	}
	if len(ss.Sheets) == 0 {
		return "", fmt.Errorf("spreadsheet %s: %w", s.Ref.SpreadsheetID, ErrEmptySheet)
	}

	if gid, err := strconv.ParseInt(s.Ref.WorksheetGID, 10, 64); err == nil {
		for _, sh := range ss.Sheets {
			if sh.Properties != nil && sh.Properties.SheetId == gid {
				return sh.Properties.Title, nil
			}
		}
		logger.FromContext(ctx).Warn("Worksheet gid not found, using first worksheet", "spreadsheetID", s.Ref.SpreadsheetID, "gid", s.Ref.WorksheetGID)
	}
	if ss.Sheets[0].Properties == nil {
		return "", fmt.Errorf("spreadsheet %s has a worksheet without properties", s.Ref.SpreadsheetID)
	}
	return ss.Sheets[0].Properties.Title, nil
}

func quoteSheetTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
