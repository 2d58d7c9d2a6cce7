package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferIdentifier(t *testing.T) {
	t.Run("ExactID", func(t *testing.T) {
		id, err := InferIdentifier([]string{"name", "id", "record_id"})
		assert.NoError(t, err)
		assert.Equal(t, "id", id)
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		id, err := InferIdentifier([]string{"Name", "ID"})
		assert.NoError(t, err)
		assert.Equal(t, "ID", id)
	})

	t.Run("ExactUUIDBeforeSuffix", func(t *testing.T) {
		id, err := InferIdentifier([]string{"asset_id", "uuid"})
		assert.NoError(t, err)
		assert.Equal(t, "uuid", id)
	})

	t.Run("SuffixOverSerial", func(t *testing.T) {
		// suffix _id is a higher tier than exact serial
		id, err := InferIdentifier([]string{"record_id", "serial", "name"})
		assert.NoError(t, err)
		assert.Equal(t, "record_id", id)
	})

	t.Run("PrefixID", func(t *testing.T) {
		id, err := InferIdentifier([]string{"name", "id_number"})
		assert.NoError(t, err)
		assert.Equal(t, "id_number", id)
	})

	t.Run("ContainsUUID", func(t *testing.T) {
		id, err := InferIdentifier([]string{"name", "option_uuid_col"})
		assert.NoError(t, err)
		assert.Equal(t, "option_uuid_col", id)
	})

	t.Run("ExactSerialBeforeContains", func(t *testing.T) {
		id, err := InferIdentifier([]string{"serial_number", "serial"})
		assert.NoError(t, err)
		assert.Equal(t, "serial", id)
	})

	t.Run("ContainsSerial", func(t *testing.T) {
		id, err := InferIdentifier([]string{"name", "device_serial"})
		assert.NoError(t, err)
		assert.Equal(t, "device_serial", id)
	})

	t.Run("LexicalTieBreakWithinTier", func(t *testing.T) {
		// Both match suffix _id; the lexically smaller lowercased name wins
		// regardless of input order.
		id, err := InferIdentifier([]string{"zone_id", "asset_id"})
		assert.NoError(t, err)
		assert.Equal(t, "asset_id", id)

		id, err = InferIdentifier([]string{"asset_id", "zone_id"})
		assert.NoError(t, err)
		assert.Equal(t, "asset_id", id)
	})

	t.Run("NoCandidate", func(t *testing.T) {
		_, err := InferIdentifier([]string{"name", "quantity", "location"})
		assert.ErrorIs(t, err, ErrNoIdentifier)
	})

	t.Run("EmptySchema", func(t *testing.T) {
		_, err := InferIdentifier(nil)
		assert.ErrorIs(t, err, ErrNoIdentifier)
	})
}
