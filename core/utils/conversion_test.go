package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	assert.Equal(t, 5, ToInt(5))
	assert.Equal(t, 5, ToInt(int64(5)))
	assert.Equal(t, 5, ToInt(uint8(5)))
	assert.Equal(t, 5, ToInt(5.9)) // truncates
	assert.Equal(t, 5, ToInt("5"))
	assert.Equal(t, 5, ToInt([]byte("5")))
	assert.Equal(t, 0, ToInt("not a number"))
}

func TestToFloat(t *testing.T) {
	f, ok := ToFloat(5)
	assert.True(t, ok)
	assert.Equal(t, 5.0, f)

	f, ok = ToFloat(" 5.5 ")
	assert.True(t, ok)
	assert.Equal(t, 5.5, f)

	f, ok = ToFloat([]byte("2"))
	assert.True(t, ok)
	assert.Equal(t, 2.0, f)

	_, ok = ToFloat("not a number")
	assert.False(t, ok)
	_, ok = ToFloat(nil)
	assert.False(t, ok)
}

func TestToString(t *testing.T) {
	assert.Equal(t, "x", ToString("x"))
	assert.Equal(t, "x", ToString([]byte("x")))
	assert.Equal(t, "5", ToString(5))
	assert.Equal(t, "true", ToString(true))
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool(1))
	assert.True(t, ToBool("1"))
	assert.True(t, ToBool("TRUE"))
	assert.True(t, ToBool([]byte("true")))
	assert.False(t, ToBool(0))
	assert.False(t, ToBool("no"))
	assert.False(t, ToBool(nil))
}
