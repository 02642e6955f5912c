package table

import (
	"fmt"
	"reflect"
	"testing"
)

func textColumn(name string, values ...string) Column {
	cells := make([]Value, len(values))
	for i, v := range values {
		cells[i] = NewTextValue(v)
	}
	return Column{Name: name, Kind: KindTextual, Cells: cells}
}

func numColumn(name string, values ...float64) Column {
	cells := make([]Value, len(values))
	for i, v := range values {
		cells[i] = NewNumericValue(v)
	}
	return Column{Name: name, Kind: KindNumeric, Cells: cells}
}

func TestDeriveControlsCategorical(t *testing.T) {
	tbl := &Table{Columns: []Column{
		textColumn("region", "b", "a", "b", "c"),
	}}

	controls := DeriveControls(tbl)
	control, ok := controls["region"]
	if !ok {
		t.Fatal("region should get a categorical control")
	}
	if control.Kind != ControlCategorical {
		t.Fatalf("kind = %s, want categorical", control.Kind)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(control.Options, want) {
		t.Errorf("options = %v, want %v (sorted, distinct)", control.Options, want)
	}
}

func TestDeriveControlsCategoricalBounds(t *testing.T) {
	single := textColumn("constant", "x", "x", "x")

	many := Column{Name: "wide", Kind: KindTextual}
	for i := 0; i < MaxCategoricalOptions+1; i++ {
		many.Cells = append(many.Cells, NewTextValue(fmt.Sprintf("v%02d", i)))
	}

	atLimit := Column{Name: "limit", Kind: KindTextual}
	for i := 0; i < MaxCategoricalOptions; i++ {
		atLimit.Cells = append(atLimit.Cells, NewTextValue(fmt.Sprintf("v%02d", i)))
	}

	controls := DeriveControls(&Table{Columns: []Column{single, many, atLimit}})

	if _, ok := controls["constant"]; ok {
		t.Error("a single-value column must not be offered a control")
	}
	if _, ok := controls["wide"]; ok {
		t.Errorf("a column with more than %d distinct values must not be offered a control", MaxCategoricalOptions)
	}
	if _, ok := controls["limit"]; !ok {
		t.Errorf("a column with exactly %d distinct values should be offered a control", MaxCategoricalOptions)
	}
}

func TestDeriveControlsCategoricalIgnoresMissing(t *testing.T) {
	col := Column{Name: "c", Kind: KindTextual, Cells: []Value{
		NewTextValue("a"), NewMissingValue(), NewTextValue("b"),
	}}
	controls := DeriveControls(&Table{Columns: []Column{col}})
	if want := []string{"a", "b"}; !reflect.DeepEqual(controls["c"].Options, want) {
		t.Errorf("options = %v, want %v (missing values are not eligible)", controls["c"].Options, want)
	}
}

func TestDeriveControlsRange(t *testing.T) {
	tbl := &Table{Columns: []Column{
		numColumn("amount", 30, 10, 20),
	}}

	controls := DeriveControls(tbl)
	control, ok := controls["amount"]
	if !ok {
		t.Fatal("amount should get a range control")
	}
	if control.Kind != ControlRange {
		t.Fatalf("kind = %s, want range", control.Kind)
	}
	if control.Min != 10 || control.Max != 30 {
		t.Errorf("bounds = [%v, %v], want [10, 30]", control.Min, control.Max)
	}
}

func TestDeriveControlsRangeDegenerate(t *testing.T) {
	flat := numColumn("flat", 5, 5, 5)
	empty := Column{Name: "empty", Kind: KindNumeric, Cells: []Value{
		NewMissingValue(), NewMissingValue(),
	}}

	controls := DeriveControls(&Table{Columns: []Column{flat, empty}})
	if _, ok := controls["flat"]; ok {
		t.Error("min == max must not be offered a control")
	}
	if _, ok := controls["empty"]; ok {
		t.Error("an all-missing column must not be offered a control")
	}
}
