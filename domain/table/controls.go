package table

import "sort"

// MaxCategoricalOptions bounds how many distinct values a textual column may
// have before it stops being offered as a categorical filter.
const MaxCategoricalOptions = 30

// ControlKind defines which filter widget a column is offered
type ControlKind string

const (
	ControlCategorical ControlKind = "categorical"
	ControlRange       ControlKind = "range"
)

// Control describes the legal constraint space for one column: the distinct
// values a categorical filter may select from, or the closed numeric bounds a
// range filter may narrow. Columns without a control entry stay sortable,
// hideable and aggregatable - they just cannot be filtered.
type Control struct {
	Column string      `json:"column"`
	Kind   ControlKind `json:"kind"`

	// Categorical: all distinct non-missing values, sorted ascending
	Options []string `json:"options,omitempty"`

	// Range: observed bounds; the default selection is the full interval
	Min float64 `json:"min,omitempty"`
	Max float64 `json:"max,omitempty"`
}

// DeriveControls computes the per-column control descriptors for a table.
// Pure function of the table; recompute only if the table changes.
//
// Textual columns qualify when their distinct non-missing value count is in
// (1, 30]. Numeric columns qualify when min < max over non-missing values.
func DeriveControls(t *Table) map[string]Control {
	controls := make(map[string]Control)

	for _, col := range t.Columns {
		switch col.Kind {
		case KindTextual:
			distinct := distinctTextValues(col)
			if len(distinct) > 1 && len(distinct) <= MaxCategoricalOptions {
				sort.Strings(distinct)
				controls[col.Name] = Control{
					Column:  col.Name,
					Kind:    ControlCategorical,
					Options: distinct,
				}
			}
		case KindNumeric:
			min, max, ok := numericBounds(col)
			if ok && min < max {
				controls[col.Name] = Control{
					Column: col.Name,
					Kind:   ControlRange,
					Min:    min,
					Max:    max,
				}
			}
		}
	}

	return controls
}

func distinctTextValues(col Column) []string {
	seen := make(map[string]bool)
	var distinct []string
	for _, cell := range col.Cells {
		if cell.IsMissing {
			continue
		}
		s := cell.Render()
		if !seen[s] {
			seen[s] = true
			distinct = append(distinct, s)
		}
	}
	return distinct
}

func numericBounds(col Column) (min, max float64, ok bool) {
	for _, cell := range col.Cells {
		n, isNum := cell.Number()
		if !isNum {
			continue
		}
		if !ok {
			min, max = n, n
			ok = true
			continue
		}
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}
	return min, max, ok
}
