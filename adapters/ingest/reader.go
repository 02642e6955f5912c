// Package ingest turns uploaded bytes into typed tables. It owns delimiter
// sniffing, BOM-aware decoding, delimited-text parsing, spreadsheet reading,
// and the per-column numeric-or-textual coercion decision.
package ingest

import (
	"bytes"
	"encoding/csv"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"tabview/domain/core"
	"tabview/domain/table"

	"github.com/xuri/excelize/v2"
)

// Read infers a table from raw delimited-text bytes: sniff the delimiter,
// decode BOM-aware, parse with the header row first, then decide each
// column's kind. Structural parse failures return a wrapped core.ErrParse and
// no partial table.
func Read(raw []byte) (*table.Table, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, core.ErrEmptyInput
	}

	delim := DetectDelimiter(raw)

	cr := csv.NewReader(strings.NewReader(decodeUTF8(raw)))
	cr.Comma = delim
	records, err := cr.ReadAll()
	if err != nil {
		return nil, core.NewParseError(err)
	}
	if len(records) == 0 {
		return nil, core.ErrEmptyInput
	}

	t := buildTable(records)
	log.Printf("[ingest] Inferred table: %d columns, %d rows (delimiter %q)",
		t.NumColumns(), t.NumRows(), string(delim))
	return t, nil
}

// ReadFile dispatches on the filename extension: spreadsheet uploads go
// through excelize, everything else through the delimited-text path.
func ReadFile(filename string, raw []byte) (*table.Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return readExcel(raw)
	default:
		return Read(raw)
	}
}

// readExcel reads the first sheet of a workbook into the same coercion
// pipeline as delimited text.
func readExcel(raw []byte) (*table.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, core.NewParseError(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, core.ErrEmptyInput
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, core.NewParseError(err)
	}
	if len(rows) == 0 {
		return nil, core.ErrEmptyInput
	}

	// Sheet rows can be ragged; pad to the header width so the table stays
	// rectangular.
	width := len(rows[0])
	records := make([][]string, len(rows))
	for i, row := range rows {
		rec := make([]string, width)
		copy(rec, row)
		records[i] = rec
	}

	t := buildTable(records)
	log.Printf("[ingest] Inferred table from sheet %q: %d columns, %d rows",
		sheets[0], t.NumColumns(), t.NumRows())
	return t, nil
}

// buildTable assembles a typed table from header + data records. Column names
// are trimmed; name uniqueness is not enforced. The kind of each column is
// decided here, once, and never re-evaluated per cell.
func buildTable(records [][]string) *table.Table {
	header := records[0]
	data := records[1:]

	t := &table.Table{Columns: make([]table.Column, len(header))}
	for c, name := range header {
		raw := make([]string, len(data))
		for r := range data {
			raw[r] = data[r][c]
		}
		t.Columns[c] = buildColumn(strings.TrimSpace(name), raw)
	}
	return t
}

// buildColumn coerces one column: if every non-missing cell parses as a
// float the column becomes numeric, otherwise it stays textual. Coercion
// failure is not an error, it is the type decision. A column with no data
// rows has nothing to coerce and stays textual.
func buildColumn(name string, raw []string) table.Column {
	numeric := len(raw) > 0
	for _, v := range raw {
		if v == "" {
			continue
		}
		if _, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
			numeric = false
			break
		}
	}

	cells := make([]table.Value, len(raw))
	for i, v := range raw {
		switch {
		case v == "":
			cells[i] = table.NewMissingValue()
		case numeric:
			n, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
			cells[i] = table.NewNumericValue(n)
		default:
			cells[i] = table.NewTextValue(v)
		}
	}

	kind := table.KindTextual
	if numeric {
		kind = table.KindNumeric
	}
	return table.Column{Name: name, Kind: kind, Cells: cells}
}
