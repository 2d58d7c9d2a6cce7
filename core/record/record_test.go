package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		assert.Equal(t, "", Normalize(nil))
	})

	t.Run("TrimsWhitespace", func(t *testing.T) {
		assert.Equal(t, "hello", Normalize("  hello  "))
		assert.Equal(t, "", Normalize("   "))
	})

	t.Run("Floats", func(t *testing.T) {
		// Trailing zeros must not leak into the canonical form,
		// otherwise DB floats never match CSV integers.
		assert.Equal(t, "5", Normalize(float64(5.0)))
		assert.Equal(t, "5.5", Normalize(float64(5.5)))
	})

	t.Run("Bytes", func(t *testing.T) {
		assert.Equal(t, "abc", Normalize([]byte(" abc ")))
	})

	t.Run("Time", func(t *testing.T) {
		ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		assert.Equal(t, "2025-03-01T12:00:00Z", Normalize(ts))
	})

	t.Run("Bool", func(t *testing.T) {
		assert.Equal(t, "true", Normalize(true))
		assert.Equal(t, "false", Normalize(false))
	})

	t.Run("Integers", func(t *testing.T) {
		assert.Equal(t, "42", Normalize(42))
		assert.Equal(t, "42", Normalize(int64(42)))
	})

	t.Run("Idempotent", func(t *testing.T) {
		inputs := []any{nil, "  x ", 5.0, true, "5.50", []byte("raw")}
		for _, in := range inputs {
			once := Normalize(in)
			assert.Equal(t, once, Normalize(once))
		}
	})
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(nil))
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.False(t, IsEmpty(0))
	assert.False(t, IsEmpty("x"))
}

func TestEqual(t *testing.T) {
	t.Run("EmptyEquivalence", func(t *testing.T) {
		assert.True(t, Equal(nil, ""))
		assert.True(t, Equal("  ", nil))
		assert.False(t, Equal(nil, "x"))
	})

	t.Run("NumericEquivalence", func(t *testing.T) {
		assert.True(t, Equal(5, "5"))
		assert.True(t, Equal("5.0", 5))
		assert.True(t, Equal(float64(1), "1"))
		assert.False(t, Equal("5", "6"))
	})

	t.Run("StringComparison", func(t *testing.T) {
		assert.True(t, Equal(" lab-a ", "lab-a"))
		assert.False(t, Equal("lab-a", "lab-b"))
	})

	t.Run("Symmetric", func(t *testing.T) {
		pairs := [][2]any{{5, "5"}, {"a", "b"}, {nil, ""}, {"1.5", 1.5}}
		for _, p := range pairs {
			assert.Equal(t, Equal(p[0], p[1]), Equal(p[1], p[0]))
		}
	})
}

func TestUnionColumns(t *testing.T) {
	t.Run("PreservesOrder", func(t *testing.T) {
		union := UnionColumns([]string{"id", "name"}, []string{"name", "location", "qty"})
		assert.Equal(t, []string{"id", "name", "location", "qty"}, union)
	})

	t.Run("EmptySides", func(t *testing.T) {
		assert.Equal(t, []string{"a"}, UnionColumns([]string{"a"}, nil))
		assert.Equal(t, []string{"a"}, UnionColumns(nil, []string{"a"}))
	})
}

func TestUnionFields(t *testing.T) {
	a := Record{"id": 1, "name": "x"}
	b := Record{"id": 2, "qty": 3}
	assert.Equal(t, []string{"id", "name", "qty"}, UnionFields(a, b))
}

func TestSet(t *testing.T) {
	s := NewSet("id", "name")
	assert.Equal(t, 0, s.Len())
	s.Append(Record{"id": 1, "name": "x"})
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.HasColumn("id"))
	assert.False(t, s.HasColumn("qty"))

	var nilSet *Set
	assert.Equal(t, 0, nilSet.Len())
}
