package sources

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/username/sheetfolio/src/logger"
	"github.com/username/sheetfolio/src/models"
)

const (
	DefaultExportBaseURL = "https://docs.google.com/spreadsheets/d"
	DefaultFetchTimeout  = 10 * time.Second
	// MaxExportBytes bounds one CSV export download.
	MaxExportBytes int64 = 32 << 20
)

// PublicSheetSource downloads a link-shared sheet through its CSV export URL.
type PublicSheetSource struct {
	Ref     SheetRef
	BaseURL string
	Client  *http.Client
	// MaxBytes caps the export body; zero means MaxExportBytes.
	MaxBytes int64
}

func NewPublicSheetSource(ref SheetRef, timeout time.Duration) *PublicSheetSource {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &PublicSheetSource{
		Ref:     ref,
		BaseURL: DefaultExportBaseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

func (s *PublicSheetSource) Name() string { return "public:" + s.Ref.SpreadsheetID }

// Fetch tries the configured worksheet first. When the export answers with an HTML page
// it retries without the gid, which selects the first worksheet, before giving up.
func (s *PublicSheetSource) Fetch(ctx context.Context) ([]models.Row, error) {
	log := logger.FromContext(ctx)

	body, err := s.download(ctx, s.exportURL(s.Ref.WorksheetGID))
	if err != nil {
		return nil, err
	}
	if looksLikeHTML(body) {
		log.Warn("Sheet export returned HTML, retrying without gid", "spreadsheetID", s.Ref.SpreadsheetID, "gid", s.Ref.WorksheetGID)
		body, err = s.download(ctx, s.exportURL(""))
		if err != nil {
			return nil, err
		}
		if looksLikeHTML(body) {
			return nil, fmt.Errorf("spreadsheet %s: %w", s.Ref.SpreadsheetID, ErrNotPublic)
		}
	}

	rows, err := ReadCSV(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("spreadsheet %s: %w", s.Ref.SpreadsheetID, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("spreadsheet %s: %w", s.Ref.SpreadsheetID, ErrEmptySheet)
	}
	log.Info("Fetched public sheet", "spreadsheetID", s.Ref.SpreadsheetID, "rows", len(rows))
	return rows, nil
}

func (s *PublicSheetSource) exportURL(gid string) string {
	base := strings.TrimRight(s.BaseURL, "/")
	q := url.Values{}
	q.Set("format", "csv")
	if gid != "" {
		q.Set("gid", gid)
	}
	return fmt.Sprintf("%s/%s/export?%s", base, url.PathEscape(s.Ref.SpreadsheetID), q.Encode())
}

func (s *PublicSheetSource) download(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build export request: %w", err)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error fetching public sheet: %w", err)
	}
	defer resp.Body.Close()

	limit := s.MaxBytes
	if limit <= 0 {
		limit = MaxExportBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read export response: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("spreadsheet %s: %w (limit %d bytes)", s.Ref.SpreadsheetID, ErrExportTooLarge, limit)
	}
	// Private sheets answer 200 with a login page; check that before the status.
	if looksLikeHTML(body) {
		return body, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet export returned status %d", resp.StatusCode)
	}
	return body, nil
}

func looksLikeHTML(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	if bytes.HasPrefix(trimmed, []byte("<!DOCTYPE")) {
		return true
	}
	return bytes.Contains(bytes.ToLower(body), []byte("<html"))
}
