package ingest

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sniffWindow is how many raw bytes the delimiter heuristic inspects
const sniffWindow = 2048

// decodeUTF8 decodes raw bytes as UTF-8, stripping a leading byte-order mark
// and replacing undecodable bytes. Best effort: it never fails, a truncated
// multi-byte sequence just becomes a replacement rune.
func decodeUTF8(raw []byte) string {
	decoded, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), raw)
	if err != nil {
		// The replacement decoder does not error on bad input; keep the raw
		// bytes if the transformer itself gives up.
		return string(raw)
	}
	return string(decoded)
}

// DetectDelimiter sniffs the field delimiter from the first 2048 bytes of the
// input. Semicolon wins only on a strict majority over comma; ties and
// ambiguous samples default to comma. A heuristic, not a guarantee.
func DetectDelimiter(raw []byte) rune {
	window := raw
	if len(window) > sniffWindow {
		window = window[:sniffWindow]
	}
	sample := decodeUTF8(window)

	semicolons := strings.Count(sample, ";")
	commas := strings.Count(sample, ",")
	if semicolons > commas {
		return ';'
	}
	return ','
}
