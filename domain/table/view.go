package table

import "sort"

// SortSpec selects a single sort column and direction. Exactly one sort is
// active at a time; there is no multi-column sort.
type SortSpec struct {
	Column    string `json:"column"`
	Ascending bool   `json:"ascending"`
}

// RangeSelection is a caller-chosen closed sub-interval of a range control
type RangeSelection struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Constraint is a caller-chosen selection for one column: a categorical value
// subset or a numeric sub-range. A nil Range together with an empty Values
// slice means the constraint is inactive.
type Constraint struct {
	Values []string        `json:"values,omitempty"`
	Range  *RangeSelection `json:"range,omitempty"`
}

// Active reports whether the constraint filters anything. An empty categorical
// selection means "no filter applied", not "exclude everything".
func (c Constraint) Active() bool {
	return len(c.Values) > 0 || c.Range != nil
}

// ViewParams carries everything the caller selected for one view computation
type ViewParams struct {
	Sort           SortSpec              `json:"sort"`
	Constraints    map[string]Constraint `json:"constraints,omitempty"`
	VisibleColumns []string              `json:"visible_columns,omitempty"`
}

// View is the filtered, sorted, column-projected derivative of a table with
// sequential row indices. It is freshly allocated on every computation and
// shares no mutable state with its source.
type View struct {
	Columns []Column `json:"columns"`
}

// NumRows returns the view's row count
func (v *View) NumRows() int {
	if len(v.Columns) == 0 {
		return 0
	}
	return len(v.Columns[0].Cells)
}

// ColumnNames returns header names in view order
func (v *View) ColumnNames() []string {
	names := make([]string, len(v.Columns))
	for i, c := range v.Columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up a view column by name
func (v *View) Column(name string) (*Column, bool) {
	for i := range v.Columns {
		if v.Columns[i].Name == name {
			return &v.Columns[i], true
		}
	}
	return nil, false
}

// Records renders the view as header + rows of display strings, the shape the
// presentation layer and the exporters consume.
func (v *View) Records() [][]string {
	records := make([][]string, 0, v.NumRows()+1)
	records = append(records, v.ColumnNames())
	for r := 0; r < v.NumRows(); r++ {
		row := make([]string, len(v.Columns))
		for c := range v.Columns {
			row[c] = v.Columns[c].Cells[r].Render()
		}
		records = append(records, row)
	}
	return records
}

// ComputeView derives a view from a table by applying, in this exact order:
// active constraints (logical AND), the stable sort, and the visible-column
// projection. The source table is never mutated.
//
// Intentional silent fallbacks, preserved as business rules:
//   - an empty categorical selection applies no filter
//   - a sort over an unknown column, or over mutually incomparable cells,
//     returns the filtered-but-unsorted order instead of failing
//   - an empty or fully-unknown visible-column list shows all columns
func ComputeView(t *Table, p ViewParams) *View {
	rows := filterRows(t, p.Constraints)
	rows = sortRows(t, rows, p.Sort)
	return projectColumns(t, rows, p.VisibleColumns)
}

// filterRows returns the indices of rows satisfying every active constraint.
// Range bounds are inclusive on both ends; missing cells fail every range
// comparison. Categorical matching compares the string rendering of the cell,
// so a numeric column filtered categorically can mismatch on formatting -
// preserved source behavior, not a bug to fix.
func filterRows(t *Table, constraints map[string]Constraint) []int {
	rows := make([]int, 0, t.NumRows())
	for r := 0; r < t.NumRows(); r++ {
		rows = append(rows, r)
	}

	for name, con := range constraints {
		if !con.Active() {
			continue
		}
		col, ok := t.Column(name)
		if !ok {
			continue
		}

		kept := rows[:0:0]
		switch {
		case len(con.Values) > 0:
			selected := make(map[string]bool, len(con.Values))
			for _, v := range con.Values {
				selected[v] = true
			}
			for _, r := range rows {
				if selected[col.Cells[r].Render()] {
					kept = append(kept, r)
				}
			}
		case con.Range != nil:
			for _, r := range rows {
				n, isNum := col.Cells[r].Number()
				if isNum && con.Range.Low <= n && n <= con.Range.High {
					kept = append(kept, r)
				}
			}
		}
		rows = kept
	}

	return rows
}

// sortRows stable-sorts row indices by the sort column. Missing cells order
// after present ones regardless of direction.
func sortRows(t *Table, rows []int, spec SortSpec) []int {
	col, ok := t.Column(spec.Column)
	if !ok || !sortableColumn(col, rows) {
		return rows
	}

	sorted := make([]int, len(rows))
	copy(sorted, rows)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := col.Cells[sorted[i]], col.Cells[sorted[j]]
		if a.IsMissing || b.IsMissing {
			return !a.IsMissing && b.IsMissing
		}
		if an, aok := a.Number(); aok {
			bn, _ := b.Number()
			if spec.Ascending {
				return an < bn
			}
			return an > bn
		}
		as, bs := a.Render(), b.Render()
		if spec.Ascending {
			return as < bs
		}
		return as > bs
	})

	return sorted
}

// sortableColumn reports whether the column's cells within rows are mutually
// comparable. A column holding both numeric and text cells is not; sorting it
// silently degrades to the filtered order.
func sortableColumn(col *Column, rows []int) bool {
	hasNum, hasText := false, false
	for _, r := range rows {
		switch col.Cells[r].Type {
		case ValueTypeNumeric:
			hasNum = true
		case ValueTypeText:
			hasText = true
		}
	}
	return !(hasNum && hasText)
}

// projectColumns builds the result view restricted to the visible columns in
// caller order. Unknown names are skipped; when nothing remains the view keeps
// all columns - a zero-column view is never produced.
func projectColumns(t *Table, rows []int, visible []string) *View {
	var picked []*Column
	for _, name := range visible {
		if col, ok := t.Column(name); ok {
			picked = append(picked, col)
		}
	}
	if len(picked) == 0 {
		picked = make([]*Column, len(t.Columns))
		for i := range t.Columns {
			picked[i] = &t.Columns[i]
		}
	}

	view := &View{Columns: make([]Column, len(picked))}
	for i, col := range picked {
		cells := make([]Value, len(rows))
		for j, r := range rows {
			cells[j] = col.Cells[r]
		}
		view.Columns[i] = Column{Name: col.Name, Kind: col.Kind, Cells: cells}
	}
	return view
}
