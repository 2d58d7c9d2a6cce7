package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig(t *testing.T) {
	t.Run("ZeroValue", func(t *testing.T) {
		cfg := Config{}
		assert.Empty(t, cfg.Port)
		assert.Empty(t, cfg.ApiKey)
	})

	t.Run("Populated", func(t *testing.T) {
		cfg := Config{Port: "8080", ApiKey: "secret"}
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "secret", cfg.ApiKey)
	})
}
