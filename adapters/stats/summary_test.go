package stats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabview/domain/core"
	"tabview/domain/table"
)

func numericView(name string, values ...float64) *table.View {
	cells := make([]table.Value, len(values))
	for i, v := range values {
		cells[i] = table.NewNumericValue(v)
	}
	return &table.View{Columns: []table.Column{
		{Name: name, Kind: table.KindNumeric, Cells: cells},
	}}
}

func TestSummarize(t *testing.T) {
	view := numericView("amt", 10, 20, 30, 25)

	summary, err := Summarize(view, "amt")
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Count)
	assert.Equal(t, 21.25, summary.Mean)
	assert.Equal(t, 22.5, summary.Median)
	assert.Equal(t, 30.0, summary.Max)
	assert.Equal(t, 10.0, summary.Min)
}

func TestSummarizeRoundsToTwoDecimals(t *testing.T) {
	view := numericView("v", 1, 2, 4)

	summary, err := Summarize(view, "v")
	require.NoError(t, err)

	// 7/3 = 2.333...
	assert.Equal(t, 2.33, summary.Mean)
}

func TestSummarizeSkipsMissing(t *testing.T) {
	view := &table.View{Columns: []table.Column{
		{Name: "v", Kind: table.KindNumeric, Cells: []table.Value{
			table.NewNumericValue(10),
			table.NewMissingValue(),
			table.NewNumericValue(20),
		}},
	}}

	summary, err := Summarize(view, "v")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, 15.0, summary.Mean)
}

func TestSummarizePreconditions(t *testing.T) {
	textView := &table.View{Columns: []table.Column{
		{Name: "name", Kind: table.KindTextual, Cells: []table.Value{table.NewTextValue("a")}},
	}}

	_, err := Summarize(textView, "name")
	assert.True(t, errors.Is(err, core.ErrNotNumeric), "textual column: got %v", err)

	_, err = Summarize(numericView("v"), "v")
	assert.True(t, errors.Is(err, core.ErrEmptyView), "empty view: got %v", err)

	_, err = Summarize(numericView("v", 1), "ghost")
	assert.True(t, errors.Is(err, core.ErrColumnNotFound), "unknown column: got %v", err)
}

func TestDistributionOrderedAscending(t *testing.T) {
	// Insertion order deliberately scrambled
	view := numericView("v", 30, 10, 20, 10, 30, 10)

	buckets, err := Distribution(view, "v")
	require.NoError(t, err)

	want := []Bucket{
		{Value: 10, Count: 3},
		{Value: 20, Count: 1},
		{Value: 30, Count: 2},
	}
	assert.Equal(t, want, buckets)
}

func TestDistributionExcludesMissing(t *testing.T) {
	view := &table.View{Columns: []table.Column{
		{Name: "v", Kind: table.KindNumeric, Cells: []table.Value{
			table.NewNumericValue(1),
			table.NewMissingValue(),
			table.NewNumericValue(1),
		}},
	}}

	buckets, err := Distribution(view, "v")
	require.NoError(t, err)
	assert.Equal(t, []Bucket{{Value: 1, Count: 2}}, buckets)
}
