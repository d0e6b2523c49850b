// Package config loads the settings of the correction tools from the
// environment and an optional JSON config file.
//
// Precedence follows kong: environment variables, then the first config file
// that sets a key, then the built-in default. JSON keys are the setting names
// in snake case, e.g. {"readings_db": "/var/lib/biblein1year/readings.db"}.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/biblein1year/internal/logging"
	"github.com/FocuswithJustin/biblein1year/internal/passage"
	"github.com/FocuswithJustin/biblein1year/internal/validation"
)

// ErrUsage is returned when the command is invoked with arguments.
var ErrUsage = errors.New("this command takes no arguments")

// DefaultConfigPaths are searched in order for a JSON config file. Missing
// files are skipped.
var DefaultConfigPaths = []string{
	"/etc/biblein1year/config.json",
	"~/.config/biblein1year/config.json",
}

// Config holds every setting of a batch run.
type Config struct {
	ReadingsDB        string        `name:"readings-db" env:"READINGS_DB" default:"readings.db" help:"Path to the calendar SQLite database"`
	PassageURL        string        `name:"passage-url" env:"PASSAGE_URL" default:"https://labs.bible.org/api/" help:"Base URL of the passage lookup service"`
	PassageFormat     string        `name:"passage-format" env:"PASSAGE_FORMAT" default:"json" enum:"json,xml" help:"Response format requested from the passage service"`
	PassageTimeout    time.Duration `name:"passage-timeout" env:"PASSAGE_TIMEOUT" default:"30s" help:"Timeout for one passage lookup"`
	PassageCacheTTL   time.Duration `name:"passage-cache-ttl" env:"PASSAGE_CACHE_TTL" default:"1h" help:"How long passage lookups are reused; 0 keeps them for the whole run"`
	LogLevel          string        `name:"log-level" env:"LOG_LEVEL" default:"info" enum:"debug,info,warn,error" help:"Log level"`
	LogFormat         string        `name:"log-format" env:"LOG_FORMAT" default:"text" enum:"json,text" help:"Log output format"`
	AbbreviationCheck bool          `name:"abbreviation-check" env:"ABBREVIATION_CHECK" help:"Warn about books without a registered abbreviation"`
	DryRun            bool          `name:"dry-run" env:"DRY_RUN" help:"Detect and resolve overlaps without writing corrections"`
}

// Load builds a Config from the environment and DefaultConfigPaths.
// Any argument yields ErrUsage.
func Load(args []string) (*Config, error) {
	return LoadFrom(args, DefaultConfigPaths...)
}

// LoadFrom is Load with explicit config file paths.
func LoadFrom(args []string, paths ...string) (*Config, error) {
	if len(args) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUsage, strings.Join(args, " "))
	}

	var cfg Config
	parser, err := kong.New(&cfg,
		kong.Name("fix-overlapping-refs"),
		kong.Description("Advance daily readings that start on the verse where the previous day ended."),
		kong.Configuration(kong.JSON, paths...),
	)
	if err != nil {
		return nil, fmt.Errorf("building config parser: %w", err)
	}
	if _, err := parser.Parse(nil); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values kong cannot check on its own.
func (c *Config) Validate() error {
	if err := validation.ValidateDatabasePath(c.ReadingsDB); err != nil {
		return fmt.Errorf("READINGS_DB: %w", err)
	}
	if err := validation.ValidateServiceURL(c.PassageURL); err != nil {
		return fmt.Errorf("PASSAGE_URL: %w", err)
	}
	switch c.PassageFormat {
	case "json", "xml":
	default:
		return fmt.Errorf("PASSAGE_FORMAT: unsupported format %q", c.PassageFormat)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL: unknown level %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT: unknown format %q", c.LogFormat)
	}
	if c.PassageTimeout <= 0 {
		return fmt.Errorf("PASSAGE_TIMEOUT: must be positive, got %s", c.PassageTimeout)
	}
	if c.PassageCacheTTL < 0 {
		return fmt.Errorf("PASSAGE_CACHE_TTL: must not be negative, got %s", c.PassageCacheTTL)
	}
	return nil
}

// Format returns the passage response format.
func (c *Config) Format() passage.Format {
	if c.PassageFormat == "xml" {
		return passage.FormatXML
	}
	return passage.FormatJSON
}

// Level returns the configured log level.
func (c *Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// OutputFormat returns the configured log format.
func (c *Config) OutputFormat() logging.Format {
	return logging.ParseFormat(c.LogFormat)
}
