package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Data sources
const (
	SourceHTTP   = "http"
	SourceFile   = "file"
	SourceCSV    = "csv"
	SourceSMS    = "sms"
	SourceSQLite = "sqlite"
)

type Config struct {
	// Data source selection
	Source string

	// HTTP API
	APIURL      string
	HTTPTimeout time.Duration

	// Offline sources
	TransactionsFile string
	SummaryFile      string
	CSVFile          string
	SMSFile          string
	RulesFile        string
	SQLitePath       string
	Timezone         string

	// Dashboard
	PageSize        int
	RefreshInterval time.Duration
	OutputDir       string

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads the configuration from the environment after merging the given
// dotenv files (".env" when none are given). Missing dotenv files are ignored
// and variables already set in the environment win.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := &Config{
		Source: getEnv("DASHBOARD_SOURCE", SourceHTTP),

		APIURL:      getEnv("DASHBOARD_API_URL", "http://localhost:5000"),
		HTTPTimeout: getEnvDuration("DASHBOARD_HTTP_TIMEOUT", 10*time.Second),

		TransactionsFile: getEnv("DASHBOARD_TRANSACTIONS_FILE", ""),
		SummaryFile:      getEnv("DASHBOARD_SUMMARY_FILE", ""),
		CSVFile:          getEnv("DASHBOARD_CSV_FILE", ""),
		SMSFile:          getEnv("DASHBOARD_SMS_FILE", ""),
		RulesFile:        getEnv("DASHBOARD_RULES_FILE", ""),
		SQLitePath:       getEnv("DASHBOARD_SQLITE_PATH", ""),
		Timezone:         getEnv("DASHBOARD_TIMEZONE", "Africa/Kigali"),

		PageSize:        getEnvInt("DASHBOARD_PAGE_SIZE", 100),
		RefreshInterval: getEnvDuration("DASHBOARD_REFRESH_INTERVAL", 0),
		OutputDir:       getEnv("DASHBOARD_OUTPUT_DIR", "."),

		LogLevel:  getEnv("DASHBOARD_LOG_LEVEL", "info"),
		LogFormat: getEnv("DASHBOARD_LOG_FORMAT", "json"),
	}

	return cfg, nil
}

// Location returns the configured timezone, or UTC if it cannot be loaded
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	switch c.Source {
	case SourceHTTP:
		if parsedURL, err := url.Parse(c.APIURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid API URL '%s': %v", c.APIURL, err))
		} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid API URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
		}
		if c.HTTPTimeout <= 0 {
			errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must be positive", c.HTTPTimeout))
		}
	case SourceFile:
		if c.TransactionsFile == "" {
			errors = append(errors, "transactions file is required when using file source")
		}
		if c.SummaryFile == "" {
			errors = append(errors, "summary file is required when using file source")
		}
	case SourceCSV:
		if c.CSVFile == "" {
			errors = append(errors, "CSV file is required when using csv source")
		}
	case SourceSMS:
		if c.SMSFile == "" {
			errors = append(errors, "SMS backup file is required when using sms source")
		}
	case SourceSQLite:
		if c.SQLitePath == "" {
			errors = append(errors, "SQLite database path is required when using sqlite source")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid source '%s': must be one of %v",
			c.Source, []string{SourceHTTP, SourceFile, SourceCSV, SourceSMS, SourceSQLite}))
	}

	for _, f := range []string{c.TransactionsFile, c.SummaryFile, c.CSVFile, c.SMSFile, c.RulesFile, c.SQLitePath} {
		if f == "" {
			continue
		}
		if _, err := os.Stat(f); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("file does not exist: %s", f))
		}
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errors = append(errors, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
	}

	if c.PageSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid page size %d: must be at least 1", c.PageSize))
	}

	if c.RefreshInterval < 0 {
		errors = append(errors, fmt.Sprintf("invalid refresh interval %v: must not be negative", c.RefreshInterval))
	} else if c.RefreshInterval > 0 && c.RefreshInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid refresh interval %v: must be at least 1 second", c.RefreshInterval))
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'json' or 'text'", c.LogFormat))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
