package cursor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njalerikson/tomlkit/pkg/cursor"
	"github.com/njalerikson/tomlkit/pkg/errors"
)

func TestCursorAdvanceTracksLineAndColumn(t *testing.T) {
	c := cursor.New([]byte("ab\ncd"))
	require.Equal(t, byte('a'), c.Current())
	require.NoError(t, c.Inc(true))
	require.Equal(t, byte('b'), c.Current())
	require.NoError(t, c.Inc(true))
	require.Equal(t, byte('\n'), c.Current())
	require.NoError(t, c.Inc(true))
	assert.Equal(t, 2, c.Line())
	assert.Equal(t, 1, c.Column())
	assert.Equal(t, byte('c'), c.Current())
}

func TestCursorIncAtEOFRaises(t *testing.T) {
	c := cursor.New([]byte("a"))
	require.NoError(t, c.Inc(true))
	assert.True(t, c.AtEOF())
	err := c.Inc(true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.UnexpectedEof))
}

func TestCursorConsume(t *testing.T) {
	c := cursor.New([]byte("123abc"))
	digits, err := c.Consume(func(b byte) bool { return b >= '0' && b <= '9' }, 1, -1)
	require.NoError(t, err)
	assert.Equal(t, "123", digits)
	assert.Equal(t, byte('a'), c.Current())
}

func TestCursorConsumeMinFails(t *testing.T) {
	c := cursor.New([]byte("abc"))
	_, err := c.Consume(func(b byte) bool { return b >= '0' && b <= '9' }, 1, -1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.UnexpectedChar))
}

func TestCursorTryRestoresOnFailure(t *testing.T) {
	c := cursor.New([]byte("abc"))
	err := c.Try(func() error {
		require.NoError(t, c.Inc(true))
		require.NoError(t, c.Inc(true))
		return c.ParseError(errors.UnexpectedChar, "forced failure")
	})
	require.Error(t, err)
	assert.Equal(t, 0, c.Idx())
	assert.Equal(t, byte('a'), c.Current())
}

func TestCursorTryCommitsOnSuccess(t *testing.T) {
	c := cursor.New([]byte("abc"))
	err := c.Try(func() error {
		return c.Inc(true)
	})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Idx())
	assert.Equal(t, byte('b'), c.Current())
}

func TestCursorTryNests(t *testing.T) {
	c := cursor.New([]byte("abcd"))
	outerErr := c.Try(func() error {
		require.NoError(t, c.Inc(true))
		innerErr := c.Try(func() error {
			require.NoError(t, c.Inc(true))
			return c.ParseError(errors.UnexpectedChar, "inner fails")
		})
		require.Error(t, innerErr)
		// Inner checkpoint rolled back; we're still one byte in from the outer advance.
		assert.Equal(t, 1, c.Idx())
		return nil
	})
	require.NoError(t, outerErr)
	assert.Equal(t, 1, c.Idx())
}
