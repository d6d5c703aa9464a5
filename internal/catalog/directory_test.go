package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveGroup(t *testing.T) {
	c := Seed()

	name, err := c.ResolveGroup("2")
	require.NoError(t, err)
	require.Equal(t, "drinks", name)

	name, err = c.ResolveGroup("Foods")
	require.NoError(t, err)
	require.Equal(t, "foods", name)

	_, err = c.ResolveGroup("4")
	require.ErrorIs(t, err, ErrGroupNotFound)
	_, err = c.ResolveGroup("0")
	require.ErrorIs(t, err, ErrGroupNotFound)
	_, err = c.ResolveGroup("snacks")
	require.ErrorIs(t, err, ErrGroupNotFound)
}

func TestResolveGroupFollowsCurrentOrder(t *testing.T) {
	c := Seed()
	require.NoError(t, c.DeleteGroup("fruits"))

	name, err := c.ResolveGroup("1")
	require.NoError(t, err)
	require.Equal(t, "drinks", name)
}

func TestResolveProduct(t *testing.T) {
	c := Seed()

	name, err := c.ResolveProduct("fruits", "3")
	require.NoError(t, err)
	require.Equal(t, "mango", name)

	name, err = c.ResolveProduct("fruits", "Apple")
	require.NoError(t, err)
	require.Equal(t, "apple", name)

	_, err = c.ResolveProduct("fruits", "9")
	require.ErrorIs(t, err, ErrProductNotFound)
	_, err = c.ResolveProduct("fruits", "wine")
	require.ErrorIs(t, err, ErrProductNotFound)
	_, err = c.ResolveProduct("snacks", "1")
	require.ErrorIs(t, err, ErrGroupNotFound)
}

func TestGroupOf(t *testing.T) {
	c := Seed()

	group, err := c.GroupOf("pizza")
	require.NoError(t, err)
	require.Equal(t, "foods", group)

	_, err = c.GroupOf("kiwi")
	require.ErrorIs(t, err, ErrProductNotFound)
}
