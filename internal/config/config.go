// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Load     LoadConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
	Catalog  CatalogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// LoadConfig holds catalog file loading settings.
type LoadConfig struct {
	// MaxFileSize is the maximum accepted source file size in bytes (default: 10MB)
	MaxFileSize int64 `env:"LOAD_MAX_FILE_SIZE" default:"10485760"`

	// MaxConcurrent is the maximum number of files parsed in parallel (default: 2)
	MaxConcurrent int `env:"LOAD_MAX_CONCURRENT" default:"2"`

	// MaxWaitTime is how long to wait for a load slot (default: 10s)
	MaxWaitTime time.Duration `env:"LOAD_MAX_WAIT_TIME" default:"10s"`

	// Timeout is the maximum duration for parsing a single file (default: 1m)
	Timeout time.Duration `env:"LOAD_TIMEOUT" default:"1m"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 300)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"300"`

	// LoadLimit is requests per minute for load endpoints (default: 20)
	LoadLimit int `env:"RATE_LIMIT_LOAD" default:"20"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// RequireAPIKey enables X-API-Key authentication on /api routes (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted API keys
	APIKeys []string `env:"API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`

	// File is where the terminal shell writes its log; empty discards it
	File string `env:"LOG_FILE"`
}

// CatalogConfig holds catalog behavior settings shared by both shells.
type CatalogConfig struct {
	// Validation selects the edit rule set: strict or legacy (default: strict)
	Validation string `env:"CATALOG_VALIDATION" default:"strict"`

	// TextEscape enables backslash escaping in the text format (default: false)
	TextEscape bool `env:"CATALOG_TEXT_ESCAPE" default:"false"`

	// SkipBlankLines drops trailing empty lines when parsing the text format (default: true)
	SkipBlankLines bool `env:"CATALOG_SKIP_BLANK_LINES" default:"true"`

	// MaxLineBytes bounds a single text line (default: 64KB)
	MaxLineBytes int `env:"CATALOG_MAX_LINE_BYTES" default:"65536"`

	// PageSize is the initial grid page size, one of 10-50 in steps of 10 (default: 10)
	PageSize int `env:"CATALOG_PAGE_SIZE" default:"10"`

	// ExportName is the download file name without extension (default: t2_katalog)
	ExportName string `env:"CATALOG_EXPORT_NAME" default:"t2_katalog"`

	// XMLIndent is the indentation used when writing XML (default: two spaces).
	// An empty value means the default; "none" writes a single line.
	XMLIndent string `env:"CATALOG_XML_INDENT" default:"  "`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
