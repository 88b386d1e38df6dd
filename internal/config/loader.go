package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".mlbleaders"

// xdgConfigFile is the file name looked up inside XDGConfigDir.
const xdgConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .mlbleaders configuration file.
// Every field is optional; unset fields leave the Config untouched.
type File struct {
	// Year is the season to fetch.
	Year *int `yaml:"year,omitempty"`

	// BaseURL overrides the host serving the leaders page.
	BaseURL *string `yaml:"baseURL,omitempty"`

	// OutputDir overrides the output directory.
	OutputDir *string `yaml:"outputDir,omitempty"`

	// Timeout is a Go duration string such as "45s".
	Timeout *string `yaml:"timeout,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent *string `yaml:"userAgent,omitempty"`

	// AcceptLanguage overrides the Accept-Language header.
	AcceptLanguage *string `yaml:"acceptLanguage,omitempty"`

	// Headers are extra request headers.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Markdown enables the Markdown summary.
	Markdown *bool `yaml:"markdown,omitempty"`

	// XLSX enables the spreadsheet export.
	XLSX *bool `yaml:"xlsx,omitempty"`

	// JSON enables the run manifest.
	JSON *bool `yaml:"json,omitempty"`

	// Summary toggles the console leaderboard.
	Summary *bool `yaml:"summary,omitempty"`

	// DropRepeatedHeaders removes rows that repeat the header row.
	DropRepeatedHeaders *bool `yaml:"dropRepeatedHeaders,omitempty"`
}

// LoadConfigFile loads a configuration file from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// Apply copies every set field of the file into cfg.
func (cf *File) Apply(cfg *Config) error {
	if cf.Year != nil {
		cfg.Year = *cf.Year
	}
	if cf.BaseURL != nil {
		cfg.BaseURL = *cf.BaseURL
	}
	if cf.OutputDir != nil {
		cfg.OutputDir = *cf.OutputDir
	}
	if cf.Timeout != nil {
		d, err := time.ParseDuration(*cf.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", *cf.Timeout, err)
		}
		cfg.Timeout = d
	}
	if cf.UserAgent != nil {
		cfg.UserAgent = *cf.UserAgent
	}
	if cf.AcceptLanguage != nil {
		cfg.AcceptLanguage = *cf.AcceptLanguage
	}
	if len(cf.Headers) > 0 {
		if cfg.Headers == nil {
			cfg.Headers = make(map[string]string)
		}
		for k, v := range cf.Headers {
			cfg.Headers[k] = v
		}
	}
	if cf.Markdown != nil {
		cfg.MarkdownReport = *cf.Markdown
	}
	if cf.XLSX != nil {
		cfg.XLSXReport = *cf.XLSX
	}
	if cf.JSON != nil {
		cfg.JSONManifest = *cf.JSON
	}
	if cf.Summary != nil {
		cfg.ConsoleSummary = *cf.Summary
	}
	if cf.DropRepeatedHeaders != nil {
		cfg.DropRepeatedHeaders = *cf.DropRepeatedHeaders
	}
	return nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .mlbleaders in the current directory
// 3. Look for .mlbleaders in the user's home directory
// 4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return findConfigFileIn(configPath, cwd, home, XDGConfigDir())
}

// findConfigFileIn implements FindConfigFile against explicit directories.
// An empty directory is skipped.
func findConfigFileIn(configPath, cwd, home, xdgDir string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd != "" {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home != "" {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	if xdgDir != "" {
		candidates = append(candidates, filepath.Join(xdgDir, xdgConfigFile))
	}

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}
