// Package config provides configuration structures and utilities for mlbleaders.
// It defines the season to process, how the leaders page is requested,
// and where output files are written.
package config
