// Package export serializes views for download. The delimited-text surface is
// fixed: comma-delimited, BOM-prefixed UTF-8 with a header row and no index
// column, so that re-ingesting an export reproduces the view.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"tabview/domain/table"
)

// utf8BOM is prepended to exports so spreadsheet tools detect the encoding
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSV serializes the view as comma-delimited UTF-8 text with a BOM prefix.
func CSV(v *table.View) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.WriteAll(v.Records()); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}
