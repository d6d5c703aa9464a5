package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-sim/internal/cart"
)

func TestRender(t *testing.T) {
	c := newCatalog(t)
	list := cart.NewShoppingList()
	assert.Equal(t, "Shopping list is empty.\n", cart.Render(list))

	require.NoError(t, cart.Reserve(c, list, "fruits", "apple", 3))
	require.NoError(t, cart.Reserve(c, list, "fruits", "banana", 1))
	assert.Equal(t, "1: apple 3\n2: banana 1\n", cart.Render(list))
}
