package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItemWireShape(t *testing.T) {
	items := []LineItem{{ProductID: 7, Quantity: 2}}

	raw, err := json.Marshal(items)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":7,"quantity":2}]`, string(raw))
}

func TestLineItemValid(t *testing.T) {
	assert.True(t, LineItem{ProductID: 1, Quantity: 1}.Valid())
	assert.False(t, LineItem{ProductID: 0, Quantity: 1}.Valid())
	assert.False(t, LineItem{ProductID: 1, Quantity: 0}.Valid())
	assert.False(t, LineItem{ProductID: 1, Quantity: -2}.Valid())
}

// Payloads written by older clients stored whole product objects without a
// quantity field. Those decode but fail validation, so loaders drop them.
func TestLegacyProductBlobFailsValidation(t *testing.T) {
	raw := `[{"id":3,"title":"Mochila escolar","price":320}]`

	var items []LineItem
	require.NoError(t, json.Unmarshal([]byte(raw), &items))
	require.Len(t, items, 1)
	assert.False(t, items[0].Valid())
}
