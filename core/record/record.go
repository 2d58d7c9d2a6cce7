package record

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"inventory-vault/core/utils"
)

// Record is one flat row from either a snapshot file or a live table.
// Values are scalars only (string, integer, float, bool, time, nil);
// nested structures are not supported.
type Record map[string]any

// Set is an ordered collection of records sharing a schema.
// Columns preserves the source column order (CSV header order or
// SELECT column order); Records preserves row order.
type Set struct {
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}

// NewSet creates an empty set with the given column order.
func NewSet(columns ...string) *Set {
	return &Set{Columns: columns, Records: []Record{}}
}

// Len returns the number of records in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}

// Append adds a record to the set.
func (s *Set) Append(r Record) {
	s.Records = append(s.Records, r)
}

// HasColumn reports whether the set's schema contains the given column.
// Matching is exact; callers that need case-insensitive matching should
// normalize first.
func (s *Set) HasColumn(name string) bool {
	for _, c := range s.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Normalize converts a scalar value to its canonical string form.
// This is THE single normalization used by every comparison and key lookup:
//   - nil -> ""
//   - floats render without trailing zeros (5.0 -> "5")
//   - time.Time renders as RFC 3339
//   - []byte is treated as a string
//   - the result is whitespace-trimmed
//
// Normalize is idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case []byte:
		return strings.TrimSpace(string(val))
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case time.Time:
		return val.Format(time.RFC3339)
	case *time.Time:
		if val == nil {
			return ""
		}
		return val.Format(time.RFC3339)
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return strings.TrimSpace(utils.ToString(v))
	}
}

// IsEmpty reports whether the value normalizes to the empty string.
// NULL, "" and whitespace-only strings are all empty.
func IsEmpty(v any) bool {
	return Normalize(v) == ""
}

// Equal compares two scalar values for equivalence.
// Two empty values are always equal. If both normalized forms parse as
// numbers they are compared numerically ("5" == 5 == 5.0), otherwise the
// normalized strings are compared exactly.
func Equal(a, b any) bool {
	na := Normalize(a)
	nb := Normalize(b)

	if na == "" && nb == "" {
		return true
	}
	if na == "" || nb == "" {
		return false
	}

	// Numeric comparison first, to absorb type drift from CSV round-trips
	// (integer 5 vs string "5" vs float 5.0).
	if fa, okA := utils.ToFloat(na); okA {
		if fb, okB := utils.ToFloat(nb); okB {
			return fa == fb
		}
	}

	return na == nb
}

// UnionColumns merges two schemas deterministically: a's columns in their
// original order, followed by columns only present in b in their original
// order.
func UnionColumns(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, c := range a {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	for _, c := range b {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// UnionFields merges the field names of two records into a sorted slice.
// Sorting pins a deterministic iteration order for diffs.
func UnionFields(a, b Record) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		seen[k] = struct{}{}
	}
	for k := range b {
		seen[k] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
