// Package main provides the entry point for the mlbleaders CLI.
//
// mlbleaders downloads the MLB season batting leaders page, cleans the
// leaders table, and writes it as CSV together with top-10 bar charts for
// home runs and batting average.
//
// Usage:
//
//	mlbleaders run --year 2023
//	mlbleaders show --year 2023
//
// See --help for all available options.
package main

// main is the entry point for mlbleaders.
func main() {
	Execute()
}
