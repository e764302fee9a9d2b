package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/username/sheetfolio/src/sources"
)

const (
	defaultSpreadsheetID = "1pzKHZ5xPT6oMMQ4wNNGL-Z1I-81qa_MtjI_seL5M1Ug"
	defaultWorksheetGID  = "1100303320"
)

type AppConfig struct {
	Port     string `yaml:"port" envconfig:"PORT" validate:"required,numeric"`
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`

	SpreadsheetID          string `yaml:"spreadsheet_id" envconfig:"SPREADSHEET_ID" validate:"required_without=DatabasePath"`
	WorksheetGID           string `yaml:"worksheet_gid" envconfig:"WORKSHEET_GID"`
	OrdersSpreadsheetID    string `yaml:"orders_spreadsheet_id" envconfig:"ORDERS_SPREADSHEET_ID"` // empty means SpreadsheetID
	OrdersWorksheetGID     string `yaml:"orders_worksheet_gid" envconfig:"ORDERS_WORKSHEET_GID"`   // empty means WorksheetGID
	UsePositionsSheet      bool   `yaml:"use_positions_sheet" envconfig:"USE_POSITIONS_SHEET"`
	PositionsSpreadsheetID string `yaml:"positions_spreadsheet_id" envconfig:"POSITIONS_SPREADSHEET_ID"`
	PositionsWorksheetGID  string `yaml:"positions_worksheet_gid" envconfig:"POSITIONS_WORKSHEET_GID"`

	UsePublicAccess       bool          `yaml:"use_public_access" envconfig:"USE_PUBLIC_ACCESS"`
	GoogleCredentialsFile string        `yaml:"google_credentials_file" envconfig:"GOOGLE_CREDENTIALS_FILE"`
	SheetExportBaseURL    string        `yaml:"sheet_export_base_url" envconfig:"SHEET_EXPORT_BASE_URL" validate:"omitempty,url"`
	FetchTimeout          time.Duration `yaml:"fetch_timeout" envconfig:"FETCH_TIMEOUT" validate:"gt=0"`
	CacheTTL              time.Duration `yaml:"cache_ttl" envconfig:"CACHE_TTL" validate:"gte=0"`

	// DatabasePath switches the row sources from Google Sheets to SQLite tables.
	DatabasePath      string `yaml:"database_path" envconfig:"DATABASE_PATH"`
	TransactionsTable string `yaml:"transactions_table" envconfig:"TRANSACTIONS_TABLE" validate:"required_with=DatabasePath"`
	OrdersTable       string `yaml:"orders_table" envconfig:"ORDERS_TABLE" validate:"required_with=DatabasePath"`
	PositionsTable    string `yaml:"positions_table" envconfig:"POSITIONS_TABLE"`

	EnableQuotes bool          `yaml:"enable_quotes" envconfig:"ENABLE_QUOTES"`
	QuoteURL     string        `yaml:"quote_url" envconfig:"QUOTE_URL" validate:"omitempty,url"`
	QuoteTimeout time.Duration `yaml:"quote_timeout" envconfig:"QUOTE_TIMEOUT" validate:"gt=0"`

	AllowedOrigins     []string `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	RateLimitRPS       float64  `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" validate:"gte=0"`
	RateLimitBurst     int      `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST" validate:"gte=0"`
	MaxUploadSizeBytes int64    `yaml:"max_upload_size_bytes" envconfig:"MAX_UPLOAD_SIZE_BYTES" validate:"gt=0"`
	DefaultPageSize    int      `yaml:"default_page_size" envconfig:"DEFAULT_PAGE_SIZE" validate:"min=1,max=1000"`

	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
}

var Cfg *AppConfig

// Defaults returns the configuration used when neither a file nor the environment
// sets a value.
func Defaults() *AppConfig {
	return &AppConfig{
		Port:                  "5003",
		LogLevel:              "info",
		SpreadsheetID:         defaultSpreadsheetID,
		WorksheetGID:          defaultWorksheetGID,
		GoogleCredentialsFile: "credentials.json",
		FetchTimeout:          sources.DefaultFetchTimeout,
		CacheTTL:              time.Minute,
		TransactionsTable:     "transactions",
		OrdersTable:           "orders",
		EnableQuotes:          true,
		QuoteURL:              "https://query1.finance.yahoo.com/v7/finance/quote",
		QuoteTimeout:          5 * time.Second,
		AllowedOrigins:        []string{"http://localhost:3000", "http://localhost:5003"},
		RateLimitRPS:          10,
		RateLimitBurst:        30,
		MaxUploadSizeBytes:    10 * 1024 * 1024,
		DefaultPageSize:       50,
		ShutdownTimeout:       10 * time.Second,
	}
}

// Load builds the configuration: defaults, then the YAML file named by CONFIG_FILE,
// then environment variables (including a .env file), then validation.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults.")
	} else {
		log.Println(".env file loaded successfully.")
	}

	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.normalize()

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// LoadConfig loads the configuration into Cfg and exits the process when it is invalid.
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}
	Cfg = cfg
	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, PublicAccess=%t, Database=%q",
		Cfg.Port, Cfg.LogLevel, Cfg.UsePublicAccess, Cfg.DatabasePath)
}

func loadFromFile(path string, cfg *AppConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func (c *AppConfig) normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	origins := c.AllowedOrigins[:0]
	for _, o := range c.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.AllowedOrigins = origins
}

// SheetConfig is the fetch-layer view of the configuration.
func (c *AppConfig) SheetConfig() sources.SheetConfig {
	return sources.SheetConfig{
		UsePublicAccess: c.UsePublicAccess,
		CredentialsFile: c.GoogleCredentialsFile,
		Timeout:         c.FetchTimeout,
		ExportBaseURL:   c.SheetExportBaseURL,
	}
}

func (c *AppConfig) TransactionsRef() sources.SheetRef {
	return sources.SheetRef{SpreadsheetID: c.SpreadsheetID, WorksheetGID: c.WorksheetGID}
}

// OrdersRef falls back to the transactions worksheet, which is where the orders
// lived before they got a sheet of their own.
func (c *AppConfig) OrdersRef() sources.SheetRef {
	ref := c.TransactionsRef()
	if c.OrdersSpreadsheetID != "" {
		ref.SpreadsheetID = c.OrdersSpreadsheetID
	}
	if c.OrdersWorksheetGID != "" {
		ref.WorksheetGID = c.OrdersWorksheetGID
	}
	return ref
}

func (c *AppConfig) PositionsRef() sources.SheetRef {
	ref := c.TransactionsRef()
	if c.PositionsSpreadsheetID != "" {
		ref.SpreadsheetID = c.PositionsSpreadsheetID
	}
	if c.PositionsWorksheetGID != "" {
		ref.WorksheetGID = c.PositionsWorksheetGID
	}
	return ref
}
