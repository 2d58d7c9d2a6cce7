package archive

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"inventory-vault/core/record"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/encoding/charmap"
)

// utf8BOM is stripped from decoded input; some exports prepend it.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// EncodeSet renders a record set as CSV. The header is the set's column
// order; every cell is written in its canonical normalized form, so the
// on-disk representation matches what the reconcile engine compares.
func EncodeSet(set *record.Set) ([]byte, error) {
	if set == nil {
		return nil, fmt.Errorf("encode: nil set")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(set.Columns); err != nil {
		return nil, fmt.Errorf("encode header: %w", err)
	}

	row := make([]string, len(set.Columns))
	for _, rec := range set.Records {
		for i, col := range set.Columns {
			row[i] = record.Normalize(rec[col])
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("encode row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode flush: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeSet parses a CSV snapshot into a record set. All values come back as
// strings; normalization happens at comparison time, not here.
//
// Input that is not valid UTF-8 is retried through the legacy encoding chain
// (Windows-1252, then Latin-1) before giving up. Stray index columns that
// flat exports accumulate ("index", "Unnamed: 0", bare short digit headers)
// are dropped.
func DecodeSet(r io.Reader) (*record.Set, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode read: %w", err)
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	if !utf8.Valid(raw) {
		raw, err = decodeLegacy(raw)
		if err != nil {
			return nil, err
		}
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1 // tolerate ragged rows, missing cells read as empty

	header, err := reader.Read()
	if err == io.EOF {
		return record.NewSet(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("decode header: %w", err)
	}

	// Map kept columns to their position in the raw row.
	type keptColumn struct {
		name string
		pos  int
	}
	var kept []keptColumn
	for i, col := range header {
		if isIndexColumn(col) {
			continue
		}
		kept = append(kept, keptColumn{name: col, pos: i})
	}

	columns := make([]string, 0, len(kept))
	for _, k := range kept {
		columns = append(columns, k.name)
	}
	set := record.NewSet(columns...)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode row: %w", err)
		}
		rec := make(record.Record, len(kept))
		for _, k := range kept {
			if k.pos < len(row) {
				rec[k.name] = row[k.pos]
			} else {
				rec[k.name] = ""
			}
		}
		set.Append(rec)
	}

	return set, nil
}

// decodeLegacy converts non-UTF-8 input via Windows-1252, falling back to
// Latin-1 (which accepts any byte sequence).
func decodeLegacy(raw []byte) ([]byte, error) {
	if out, err := charmap.Windows1252.NewDecoder().Bytes(raw); err == nil {
		return out, nil
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("decode legacy encoding: %w", err)
	}
	return out, nil
}

// isIndexColumn matches the artifact columns some exporters write:
// "index", "Unnamed: 0" style headers, and bare digit headers up to two
// characters.
func isIndexColumn(col string) bool {
	lower := strings.ToLower(strings.TrimSpace(col))
	if lower == "index" || lower == "unnamed: 0" {
		return true
	}
	if strings.HasPrefix(lower, "unnamed:") {
		return true
	}
	if len(lower) > 0 && len(lower) <= 2 {
		allDigits := true
		for _, r := range lower {
			if !unicode.IsDigit(r) {
				allDigits = false
				break
			}
		}
		return allDigits
	}
	return false
}

// gzipBytes compresses data for .csv.gz payloads.
func gzipBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("gzip write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gzip close: %w", err)
	}
	return buf.Bytes(), nil
}

// gunzipBytes decompresses a .csv.gz payload.
func gunzipBytes(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gunzip open: %w", err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gunzip read: %w", err)
	}
	return out, nil
}

// isCompressed reports whether a snapshot file name carries the gzip suffix.
func isCompressed(file string) bool {
	return strings.HasSuffix(file, ".gz")
}
