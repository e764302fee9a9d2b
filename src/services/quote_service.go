package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/username/sheetfolio/src/logger"
)

const (
	DefaultQuoteURL = "https://query1.finance.yahoo.com/v7/finance/quote"
	quoteUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36"
)

type yahooQuoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol             string   `json:"symbol"`
			RegularMarketPrice *float64 `json:"regularMarketPrice"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"quoteResponse"`
}

// quoteServiceImpl keeps a cookie jar so Yahoo's consent cookies survive between calls.
type quoteServiceImpl struct {
	enabled    bool
	quoteURL   string
	httpClient *http.Client
}

func NewQuoteService(enabled bool, quoteURL string, timeout time.Duration) QuoteService {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil && logger.L != nil {
		logger.L.Error("Failed to create cookie jar", "error", err)
	}
	if quoteURL == "" {
		quoteURL = DefaultQuoteURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &quoteServiceImpl{
		enabled:  enabled,
		quoteURL: quoteURL,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
	}
}

func (s *quoteServiceImpl) Enabled() bool { return s.enabled }

// GetQuotes returns the last price per symbol. Lookup failures are logged and yield
// an empty map rather than an error.
func (s *quoteServiceImpl) GetQuotes(ctx context.Context, symbols []string) (map[string]float64, error) {
	if !s.enabled {
		return nil, ErrQuotesDisabled
	}
	cleaned := CleanSymbols(symbols)
	if len(cleaned) == 0 {
		return nil, ErrNoSymbols
	}

	quotes, err := s.fetchQuotes(ctx, cleaned)
	if err != nil {
		logger.FromContext(ctx).Warn("Quote lookup failed", "symbols", cleaned, "error", err)
		return map[string]float64{}, nil
	}
	return quotes, nil
}

func (s *quoteServiceImpl) fetchQuotes(ctx context.Context, symbols []string) (map[string]float64, error) {
	q := url.Values{}
	q.Set("symbols", strings.Join(symbols, ","))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.quoteURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", quoteUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call quote API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("quote API returned non-OK status %d. Body: %s", resp.StatusCode, string(bodyBytes))
	}

	var data yahooQuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode quote response: %w", err)
	}

	results := make(map[string]float64)
	for _, item := range data.QuoteResponse.Result {
		if item.Symbol != "" && item.RegularMarketPrice != nil {
			results[item.Symbol] = *item.RegularMarketPrice
		}
	}
	return results, nil
}

// CleanSymbols trims symbols and drops blanks, keeping order.
func CleanSymbols(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
