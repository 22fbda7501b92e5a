package modal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenThenCloseReturnsToAllClosed(t *testing.T) {
	v := New(3)
	assert.False(t, v.AnyOpen())

	require.NoError(t, v.Open(1))
	assert.True(t, v.IsOpen(1))
	assert.False(t, v.IsOpen(0))
	assert.False(t, v.IsOpen(2))

	require.NoError(t, v.Close(1))
	assert.False(t, v.AnyOpen())
}

func TestResetClosesAndResizes(t *testing.T) {
	v := New(2)
	require.NoError(t, v.Open(0))

	v.Reset(5)
	assert.Equal(t, 5, v.Len())
	assert.False(t, v.AnyOpen())
	require.NoError(t, v.Open(4))
}

func TestOutOfRange(t *testing.T) {
	v := New(2)

	assert.ErrorIs(t, v.Open(2), ErrOutOfRange)
	assert.ErrorIs(t, v.Close(-1), ErrOutOfRange)
	assert.False(t, v.IsOpen(7))
}
