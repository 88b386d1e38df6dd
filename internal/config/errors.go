package config

import "errors"

// Configuration validation errors returned by Config.Validate.
// Callers match them with errors.Is.
var (
	// ErrInvalidYear is returned when the year is outside MinYear..MaxYear.
	ErrInvalidYear = errors.New("invalid year: must be a season between 1871 and 9999")

	// ErrInvalidTimeout is returned when the fetch timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrEmptyOutputDir is returned when no output directory is configured.
	ErrEmptyOutputDir = errors.New("invalid output directory: must not be empty")

	// ErrInvalidBaseURL is returned when the base URL is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("invalid base URL: must be an absolute http or https URL")

	// ErrInvalidAcceptLanguage is returned when the Accept-Language value cannot be parsed.
	ErrInvalidAcceptLanguage = errors.New("invalid Accept-Language header")
)
