// Package stats computes the summary metrics and frequency distributions the
// metrics readout and the chart consume. Callers are expected to pass numeric
// columns from non-empty views; anything else is a precondition violation and
// fails fast.
package stats

import (
	"fmt"
	"sort"

	montana "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"tabview/domain/core"
	"tabview/domain/table"
)

// Summary holds the metrics readout for one numeric column of a view. The
// four headline metrics are rounded to 2 decimal places for display.
type Summary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
	Min    float64 `json:"min"`
	StdDev float64 `json:"std_dev"`
}

// Bucket is one entry of a value-frequency distribution
type Bucket struct {
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// Summarize computes mean, median, max and min over the non-missing values of
// a numeric column within the view, plus the sample standard deviation.
func Summarize(v *table.View, column string) (Summary, error) {
	data, err := numericData(v, column)
	if err != nil {
		return Summary{}, err
	}

	mean, err := montana.Mean(data)
	if err != nil {
		return Summary{}, fmt.Errorf("mean of %s: %w", column, err)
	}
	median, err := montana.Median(data)
	if err != nil {
		return Summary{}, fmt.Errorf("median of %s: %w", column, err)
	}
	max, err := montana.Max(data)
	if err != nil {
		return Summary{}, fmt.Errorf("max of %s: %w", column, err)
	}
	min, err := montana.Min(data)
	if err != nil {
		return Summary{}, fmt.Errorf("min of %s: %w", column, err)
	}

	stdDev := 0.0
	if len(data) > 1 {
		stdDev = stat.StdDev(data, nil)
	}

	return Summary{
		Column: column,
		Count:  len(data),
		Mean:   round2(mean),
		Median: round2(median),
		Max:    round2(max),
		Min:    round2(min),
		StdDev: round2(stdDev),
	}, nil
}

// Distribution groups the column's non-missing values by exact value and
// counts occurrences, ordered ascending by value regardless of row order.
func Distribution(v *table.View, column string) ([]Bucket, error) {
	data, err := numericData(v, column)
	if err != nil {
		return nil, err
	}

	counts := make(map[float64]int, len(data))
	for _, n := range data {
		counts[n]++
	}

	buckets := make([]Bucket, 0, len(counts))
	for value, count := range counts {
		buckets = append(buckets, Bucket{Value: value, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Value < buckets[j].Value })
	return buckets, nil
}

// numericData extracts the non-missing float values of a numeric view column
func numericData(v *table.View, column string) ([]float64, error) {
	col, ok := v.Column(column)
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrColumnNotFound, column)
	}
	if col.Kind != table.KindNumeric {
		return nil, fmt.Errorf("%w: %s", core.ErrNotNumeric, column)
	}

	data := make([]float64, 0, len(col.Cells))
	for _, cell := range col.Cells {
		if n, isNum := cell.Number(); isNum {
			data = append(data, n)
		}
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s has no values to aggregate", core.ErrEmptyView, column)
	}
	return data, nil
}

func round2(n float64) float64 {
	rounded, _ := montana.Round(n, 2)
	return rounded
}
