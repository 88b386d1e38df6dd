// Package log builds the slog loggers used by mlbleaders.
//
// Loggers are wrapped in a SecureHandler that masks credential-bearing
// HTTP header values before they reach the output. Request headers are
// logged at debug level by the fetcher, and the config file may add
// headers such as Cookie or Authorization.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Debug("request headers",
//	    slog.Group("headers", "Cookie", "region=us"), // logged as ***REDACTED***
//	)
package log
