package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStoreConformance exercises the Store contract shared by all backends.
func testStoreConformance(t *testing.T, s Store[uint64, string]) {
	t.Helper()

	n, err := s.Len()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, _, ok, err := s.Min()
	require.NoError(t, err)
	assert.False(t, ok, "Min on empty store")

	_, _, ok, err = s.Max()
	require.NoError(t, err)
	assert.False(t, ok, "Max on empty store")

	// Insert three buckets out of order.
	_, ok, err = s.Insert(10, []string{"x", "z"})
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.Insert(5, []string{"y"})
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.Insert(20, []string{"w"})
	require.NoError(t, err)
	assert.False(t, ok)

	n, err = s.Len()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	order, keys, ok, err := s.Min()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(5), order)
	assert.Equal(t, []string{"y"}, keys)

	order, keys, ok, err = s.Max()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(20), order)
	assert.Equal(t, []string{"w"}, keys)

	// Point lookup preserves bucket order.
	keys, ok, err = s.Get(10)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "z"}, keys)

	_, ok, err = s.Get(11)
	require.NoError(t, err)
	assert.False(t, ok)

	// Insert is a raw replace, not a merge.
	prev, ok, err := s.Insert(10, []string{"q"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "z"}, prev)

	keys, ok, err = s.Get(10)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"q"}, keys)

	// Remove returns the bucket and deletes it.
	keys, ok, err = s.Remove(5)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"y"}, keys)

	_, ok, err = s.Remove(5)
	require.NoError(t, err)
	assert.False(t, ok)

	order, _, ok, err = s.Min()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(10), order)

	// Clear drops everything.
	require.NoError(t, s.Clear())

	n, err = s.Len()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, _, ok, err = s.Min()
	require.NoError(t, err)
	assert.False(t, ok)
}
