// Package model defines the core data structures used throughout mlbleaders.
//
// This package contains the following main types:
//   - Cell: A single table value that is text, a number, or missing
//   - Table: The Leaders Table, an ordered list of rows with named columns
//   - Run: The state carried through the pipeline for one invocation
//
// The column set of a Table is discovered when the source page is parsed,
// so rows are maps keyed by column name rather than fixed structs.
// Models live in their own package so that the extract, clean, chart and
// report packages can share them without import cycles.
package model
