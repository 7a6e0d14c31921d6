package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends selectable with STORE_BACKEND.
const (
	BackendSheets   = "sheets"
	BackendWorkbook = "workbook"
	BackendMemory   = "memory"
)

const (
	defaultSnapshotTTL = 30 * time.Second
	defaultJWTExpiry   = 24 * time.Hour
	defaultLockWait    = 2 * time.Second
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// Record store
	StoreBackend  string
	WorkbookPath  string
	WorkbookSheet string

	// StoreLockRetries is how many more times a write rejected by a locked
	// workbook is attempted, StoreLockWait apart.
	StoreLockRetries int
	StoreLockWait    time.Duration

	SheetsSpreadsheetID   string
	SheetsWorksheet       string
	SheetsCredentialsFile string
	SheetsWritesPerMinute int

	// SnapshotTTL is how long a loaded snapshot is served before a reload.
	SnapshotTTL  time.Duration
	CurrencyCode string

	// JWTSecret enables bearer auth on /api/v1 when set.
	JWTSecret         string
	JWTIssuer         string
	JWTExpiryDuration time.Duration

	RateLimit          string
	CORSAllowedOrigins []string
}

// AuthEnabled reports whether API requests must carry a bearer token.
func (c *Config) AuthEnabled() bool { return c.JWTSecret != "" }

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORE_BACKEND", BackendWorkbook)
	viper.SetDefault("STORE_LOCK_RETRIES", 3)
	viper.SetDefault("STORE_LOCK_WAIT", defaultLockWait.String())
	viper.SetDefault("WORKBOOK_PATH", "cards.xlsx")
	viper.SetDefault("WORKBOOK_SHEET", "Inventory")
	viper.SetDefault("SHEETS_SPREADSHEET_ID", "")
	viper.SetDefault("SHEETS_WORKSHEET", "Inventory")
	viper.SetDefault("SHEETS_CREDENTIALS_FILE", "credentials.json")
	viper.SetDefault("SHEETS_WRITES_PER_MINUTE", 60)
	viper.SetDefault("SNAPSHOT_TTL", defaultSnapshotTTL.String())
	viper.SetDefault("CURRENCY_CODE", "USD")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ISSUER", "card-inventory")
	viper.SetDefault("JWT_EXPIRY_DURATION", defaultJWTExpiry.String())
	viper.SetDefault("RATE_LIMIT", "120-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(viper.GetString("STORE_BACKEND")))
	if !validBackend(cfg.StoreBackend) {
		return nil, fmt.Errorf("invalid STORE_BACKEND %q: want sheets, workbook or memory", cfg.StoreBackend)
	}
	if viper.GetString("STORE_FALLBACK") != "" {
		return nil, fmt.Errorf("STORE_FALLBACK is not supported: locked writes are retried on the same store, see STORE_LOCK_RETRIES")
	}
	cfg.StoreLockRetries = viper.GetInt("STORE_LOCK_RETRIES")
	if cfg.StoreLockRetries < 0 {
		return nil, fmt.Errorf("invalid STORE_LOCK_RETRIES %d: must not be negative", cfg.StoreLockRetries)
	}
	cfg.StoreLockWait = durationOrDefault("STORE_LOCK_WAIT", defaultLockWait)

	cfg.WorkbookPath = viper.GetString("WORKBOOK_PATH")
	cfg.WorkbookSheet = viper.GetString("WORKBOOK_SHEET")
	cfg.SheetsSpreadsheetID = viper.GetString("SHEETS_SPREADSHEET_ID")
	cfg.SheetsWorksheet = viper.GetString("SHEETS_WORKSHEET")
	cfg.SheetsCredentialsFile = viper.GetString("SHEETS_CREDENTIALS_FILE")
	cfg.SheetsWritesPerMinute = viper.GetInt("SHEETS_WRITES_PER_MINUTE")
	if cfg.StoreBackend == BackendSheets && cfg.SheetsSpreadsheetID == "" {
		return nil, fmt.Errorf("SHEETS_SPREADSHEET_ID is required when the sheets backend is used")
	}

	cfg.SnapshotTTL = durationOrDefault("SNAPSHOT_TTL", defaultSnapshotTTL)
	cfg.CurrencyCode = strings.ToUpper(viper.GetString("CURRENCY_CODE"))

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET not set. API authentication is disabled.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", defaultJWTExpiry)

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}

func validBackend(name string) bool {
	switch name {
	case BackendSheets, BackendWorkbook, BackendMemory:
		return true
	}
	return false
}

// durationOrDefault parses a duration key, falling back with a warning.
func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}
