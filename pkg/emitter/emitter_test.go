package emitter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njalerikson/tomlkit/pkg/container"
	"github.com/njalerikson/tomlkit/pkg/emitter"
	"github.com/njalerikson/tomlkit/pkg/items"
	"github.com/njalerikson/tomlkit/pkg/parser"
)

func roundTrip(t *testing.T, src string) string {
	t.Helper()
	tbl, err := parser.Parse([]byte(src))
	require.NoError(t, err)
	return emitter.Emit(tbl)
}

func TestRoundTripSimpleKeyValue(t *testing.T) {
	src := "foo = \"bar\"\n"
	assert.Equal(t, src, roundTrip(t, src))
}

func TestRoundTripDeleteThenEmpty(t *testing.T) {
	tbl, err := parser.Parse([]byte("foo = \"bar\"\n"))
	require.NoError(t, err)
	assert.True(t, tbl.Delete("foo"))
	assert.Equal(t, "", emitter.Emit(tbl))
}

func TestEmitSetOnEmptyDocument(t *testing.T) {
	tbl, err := parser.Parse([]byte(""))
	require.NoError(t, err)
	require.NoError(t, tbl.Set("foo", items.NewString("bar", items.StyleBasic, false)))
	assert.Equal(t, "foo = \"bar\"\n", emitter.Emit(tbl))
}

func TestRoundTripNestedHeaders(t *testing.T) {
	src := "[a]\nb = 1\n\n[a.c]\nd = 2\n"
	assert.Equal(t, src, roundTrip(t, src))
}

func TestRoundTripIntegerBases(t *testing.T) {
	src := "a = 0xDEADBEEF\nb = 0o755\nc = 0b11010110\n"
	assert.Equal(t, src, roundTrip(t, src))
}

func TestRoundTripFloatSpecials(t *testing.T) {
	src := "sf1 = inf\nsf3 = -inf\nsf4 = nan\n"
	assert.Equal(t, src, roundTrip(t, src))
}

func TestRoundTripArrayOfTablesAndAppend(t *testing.T) {
	src := "[[p]]\na = 1\n\n[[p]]\nb = 2\n"
	assert.Equal(t, src, roundTrip(t, src))

	tbl, err := parser.Parse([]byte(src))
	require.NoError(t, err)
	v, ok := tbl.Get("p")
	require.True(t, ok)
	arr, ok := v.(*container.Array)
	require.True(t, ok)
	require.Equal(t, 2, arr.Len())

	added := arr.AppendTable()
	require.NoError(t, added.Set("c", items.NewInteger(3, 10, false)))
	assert.Equal(t, 3, arr.Len())
	assert.Equal(t, "[[p]]\na = 1\n\n[[p]]\nb = 2\n[[p]]\nc = 3\n", emitter.Emit(tbl))
}

func TestRoundTripPreservesAssignmentSpacing(t *testing.T) {
	src := "foo   =    1\nbar=2\n"
	assert.Equal(t, src, roundTrip(t, src))
}

func TestIdempotence(t *testing.T) {
	src := "[a]\nb = 1\n\n[a.c]\nd = 2\n"
	first := roundTrip(t, src)
	second := roundTrip(t, first)
	assert.Equal(t, first, second)
}

func TestRoundTripDottedKeys(t *testing.T) {
	src := "a.b.c = 1\n"
	assert.Equal(t, src, roundTrip(t, src))
}

func TestRoundTripDottedKeysSharedPrefix(t *testing.T) {
	src := "a.b.c = 1\na.b.d = 2\na.e = 3\n"
	assert.Equal(t, src, roundTrip(t, src))
}

func TestRoundTripDottedKeysUnderHeader(t *testing.T) {
	src := "[table]\na.b.c = 1\na.b.d = 2\na.c = 3\n"
	assert.Equal(t, src, roundTrip(t, src))
}

func TestRoundTripArrayElementTrailingComment(t *testing.T) {
	src := "a = [\n  1\n  , 2  #x\n  , 3\n]\n"
	assert.Equal(t, src, roundTrip(t, src))
}

func TestIdempotenceArrayElementTrailingComment(t *testing.T) {
	src := "a = [1 #x\n, 2]\n"
	first := roundTrip(t, src)
	second := roundTrip(t, first)
	assert.Equal(t, first, second)
}
