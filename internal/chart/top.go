// Package chart ranks players by a metric and renders top-N bar charts.
package chart

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/nao1215/mlbleaders/internal/clean"
	"github.com/nao1215/mlbleaders/internal/model"
)

var (
	// ErrMetricColumnMissing is returned when the table has no column for the metric.
	ErrMetricColumnMissing = errors.New("metric column not in table")

	// ErrNothingToPlot is returned when every value of the metric is missing.
	ErrNothingToPlot = errors.New("metric has no values to plot")
)

// Top returns up to n players with the largest values of metric, in
// descending order. Rows with a missing value are never returned. Equal
// values keep their table order.
func Top(t *model.Table, metric string, n int) ([]model.Entry, error) {
	if !t.HasColumn(metric) {
		return nil, fmt.Errorf("%w: %s", ErrMetricColumnMissing, metric)
	}

	entries := make([]model.Entry, 0, t.Len())
	for i, row := range t.Rows {
		v, ok := row.Get(metric).Number()
		if !ok {
			continue
		}
		entries = append(entries, model.Entry{
			Name:  row.Get(clean.NameColumn).Text(),
			Value: v,
			Row:   i,
		})
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNothingToPlot, metric)
	}

	slices.SortStableFunc(entries, func(a, b model.Entry) int {
		return cmp.Compare(b.Value, a.Value)
	})

	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
