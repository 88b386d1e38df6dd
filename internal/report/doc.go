// Package report writes the results of a run to files and the terminal.
//
// This package contains writers for different output formats:
//   - CSVWriter: the cleaned Leaders Table as comma-separated values
//   - XLSXWriter: the same table as a spreadsheet
//   - MarkdownWriter: a summary with the top players per metric
//   - JSONWriter: a machine-readable run manifest
//   - ConsoleWriter: leaderboards rendered as terminal tables
//
// Writers implement the Writer interface. WriteFile pairs any of them with
// a destination file, creating the output directory on first use.
package report
