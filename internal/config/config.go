package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"golang.org/x/text/language"
)

// Default configuration values.
const (
	// DefaultYear is the season processed when no year is given.
	DefaultYear = 2023

	// DefaultBaseURL is the host serving the season leaders pages.
	DefaultBaseURL = "https://www.espn.com"

	// DefaultOutputDir is where the CSV and chart files are written.
	// It is relative to the working directory.
	DefaultOutputDir = "output"

	// DefaultTimeout bounds the single page fetch.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is a desktop browser string. The leaders page
	// serves a reduced layout to unknown clients.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

	// DefaultAcceptLanguage requests English column headers.
	DefaultAcceptLanguage = "en-US,en;q=0.9"

	// AppName is the application name used for XDG directory paths.
	AppName = "mlbleaders"

	// MinYear is the first season with recorded MLB statistics.
	MinYear = 1871

	// MaxYear bounds the four-digit year embedded in output file names.
	MaxYear = 9999
)

// leadersPathFormat is the path of the season leaders page sorted by home runs.
const leadersPathFormat = "/mlb/history/leaders/_/breakdown/season/year/%d/sort/homeRuns"

// Config holds all configuration options for one run.
// It is populated from the config file and CLI flags, then passed
// explicitly to each stage.
type Config struct {
	// Year is the season to fetch. It also keys every output file name.
	Year int

	// BaseURL is the scheme and host of the leaders page.
	// Tests point this at a local server.
	BaseURL string

	// OutputDir is the directory receiving output files.
	// It is created on first write.
	OutputDir string

	// Timeout bounds the page fetch including reading the body.
	Timeout time.Duration

	// UserAgent is sent as the User-Agent header.
	UserAgent string

	// AcceptLanguage is sent as the Accept-Language header.
	AcceptLanguage string

	// Headers are extra request headers, typically from the config file.
	Headers map[string]string

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the explicitly requested config file, if any.
	ConfigFilePath string

	// MarkdownReport enables the Markdown summary output.
	MarkdownReport bool

	// XLSXReport enables the spreadsheet export.
	XLSXReport bool

	// JSONManifest enables the JSON run manifest.
	JSONManifest bool

	// ConsoleSummary prints the top-10 leaderboards to stdout.
	ConsoleSummary bool

	// DropRepeatedHeaders removes data rows that repeat the header row.
	DropRepeatedHeaders bool

	// KeepGoing runs every step even after one fails.
	KeepGoing bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Year:           DefaultYear,
		BaseURL:        DefaultBaseURL,
		OutputDir:      DefaultOutputDir,
		Timeout:        DefaultTimeout,
		UserAgent:      DefaultUserAgent,
		AcceptLanguage: DefaultAcceptLanguage,
		Headers:        make(map[string]string),
		ConsoleSummary: true,
	}
}

// LeadersURL returns the season leaders page URL for the configured year.
func (c *Config) LeadersURL() string {
	return strings.TrimRight(c.BaseURL, "/") + fmt.Sprintf(leadersPathFormat, c.Year)
}

// RequestHeaders returns every header sent with the page request.
// Extra headers may override the User-Agent and Accept-Language defaults.
func (c *Config) RequestHeaders() map[string]string {
	headers := map[string]string{
		"User-Agent":      c.UserAgent,
		"Accept-Language": c.AcceptLanguage,
	}
	for k, v := range c.Headers {
		headers[k] = v
	}
	return headers
}

// XDGConfigDir returns the XDG config directory for mlbleaders.
// On Linux: ~/.config/mlbleaders
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the sentinel errors.
func (c *Config) Validate() error {
	if c.Year < MinYear || c.Year > MaxYear {
		return fmt.Errorf("%w: %d", ErrInvalidYear, c.Year)
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if strings.TrimSpace(c.OutputDir) == "" {
		return ErrEmptyOutputDir
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.BaseURL)
	}

	if c.AcceptLanguage != "" {
		if _, _, err := language.ParseAcceptLanguage(c.AcceptLanguage); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAcceptLanguage, err)
		}
	}

	return nil
}
