package sources

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/username/sheetfolio/src/logger"
	"github.com/username/sheetfolio/src/models"
)

// FallbackSource tries each source in order and returns the first non-empty result.
type FallbackSource struct {
	Sources []Source
}

func (s *FallbackSource) Name() string {
	names := make([]string, len(s.Sources))
	for i, src := range s.Sources {
		names[i] = src.Name()
	}
	return "fallback(" + strings.Join(names, ",") + ")"
}

func (s *FallbackSource) Fetch(ctx context.Context) ([]models.Row, error) {
	var errs []error
	for _, src := range s.Sources {
		rows, err := src.Fetch(ctx)
		if err == nil && len(rows) > 0 {
			return rows, nil
		}
		if err == nil {
			err = ErrEmptySheet
		}
		logger.FromContext(ctx).Warn("Row source failed, trying next", "source", src.Name(), "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		return nil, errors.New("no row sources configured")
	}
	return nil, errors.Join(errs...)
}

// SheetConfig carries the fetch-layer settings of one deployment.
type SheetConfig struct {
	UsePublicAccess bool
	CredentialsFile string
	Timeout         time.Duration
	ExportBaseURL   string // empty means DefaultExportBaseURL
}

// NewSheetSource builds the fetch chain for one worksheet: the public export first when
// public access is preferred, then the service account when a credentials file exists,
// then the public export as a last resort.
func NewSheetSource(ctx context.Context, cfg SheetConfig, ref SheetRef) Source {
	public := NewPublicSheetSource(ref, cfg.Timeout)
	if cfg.ExportBaseURL != "" {
		public.BaseURL = cfg.ExportBaseURL
	}

	var chain []Source
	if cfg.UsePublicAccess {
		chain = append(chain, public)
	}
	if sa := loadServiceAccount(ctx, cfg, ref); sa != nil {
		chain = append(chain, sa)
	}
	if !cfg.UsePublicAccess {
		chain = append(chain, public)
	}
	if len(chain) == 1 {
		return chain[0]
	}
	return &FallbackSource{Sources: chain}
}

func loadServiceAccount(ctx context.Context, cfg SheetConfig, ref SheetRef) Source {
	if cfg.CredentialsFile == "" {
		return nil
	}
	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		logger.FromContext(ctx).Info("Credentials file not usable, skipping service account access", "path", cfg.CredentialsFile, "error", err)
		return nil
	}
	sa, err := NewServiceAccountSource(ctx, ref, data)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to initialize Sheets API client", "error", err)
		return nil
	}
	return sa
}
