// Package pipeline runs the leaders workflow as a sequence of steps.
//
// A run flows through fetch, extract, and clean, then through the output
// steps (CSV, charts, the optional reports, and the console summary).
// Every step receives the same *model.Run, reads what earlier steps left
// there, and records its own result.
//
// By default the first failing step ends the run. With WithContinueOnError
// every step still runs; steps whose input was never produced fail with
// ErrMissingInput and Execute returns all failures joined.
package pipeline
