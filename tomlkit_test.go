package tomlkit_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njalerikson/tomlkit"
)

// Scenario 1: delete the only key, emit empty.
func TestScenarioDeleteOnlyKey(t *testing.T) {
	doc, err := tomlkit.ParseString("foo = \"bar\"\n")
	require.NoError(t, err)
	assert.True(t, doc.Delete("foo"))
	assert.Equal(t, "", tomlkit.Emit(doc))
}

// Scenario 2: build a document from nothing.
func TestScenarioSetOnEmptyDocument(t *testing.T) {
	doc, err := tomlkit.ParseString("")
	require.NoError(t, err)
	require.NoError(t, doc.Set("foo", "bar"))
	assert.Equal(t, "foo = \"bar\"\n", tomlkit.Emit(doc))
}

// Scenario 3: nested headers round-trip and dotted addressing agree.
func TestScenarioNestedHeaderRoundTrip(t *testing.T) {
	src := "[a]\nb = 1\n\n[a.c]\nd = 2\n"
	doc, err := tomlkit.ParseString(src)
	require.NoError(t, err)
	assert.Equal(t, src, tomlkit.Emit(doc))

	v, ok := doc.GetPath("a", "c", "d")
	require.True(t, ok)
	assert.EqualValues(t, 2, tomlkit.ToNative(v))
}

// Scenario 6: array-of-tables growth via ParseReader + AppendTable.
func TestScenarioArrayOfTablesGrowth(t *testing.T) {
	src := "[[p]]\na = 1\n\n[[p]]\nb = 2\n"
	doc, err := tomlkit.ParseReader(strings.NewReader(src))
	require.NoError(t, err)

	v, ok := doc.Get("p")
	require.True(t, ok)

	native := tomlkit.ToNative(doc).(map[string]any)
	arr := native["p"].([]any)
	assert.Len(t, arr, 2)
	_ = v
}

func TestIdempotenceAcrossParseEmitCycles(t *testing.T) {
	src := "[a]\nb = 1\n\n[a.c]\nd = 2\n"
	doc1, err := tomlkit.ParseString(src)
	require.NoError(t, err)
	once := tomlkit.Emit(doc1)

	doc2, err := tomlkit.ParseString(once)
	require.NoError(t, err)
	twice := tomlkit.Emit(doc2)

	assert.Equal(t, once, twice)
}

func TestConstructionEquivalenceRoundTripsThroughNative(t *testing.T) {
	native := map[string]any{
		"name":   "example",
		"count":  int64(3),
		"nested": map[string]any{"enabled": true},
	}

	node, err := tomlkit.FromNative(native)
	require.NoError(t, err)
	back := tomlkit.ToNative(node)

	assert.Equal(t, native, back)
}

func TestDottedAddressingMatchesNestedGet(t *testing.T) {
	doc, err := tomlkit.ParseString("[a]\n[a.b]\nc = 1\n")
	require.NoError(t, err)

	viaPath, ok := doc.GetPath("a", "b", "c")
	require.True(t, ok)

	a, ok := doc.Get("a")
	require.True(t, ok)
	aTbl := a.(interface {
		GetPath(path ...string) (any, bool)
	})
	viaNested, ok := aTbl.GetPath("b", "c")
	require.True(t, ok)

	assert.Equal(t, viaPath, viaNested)
}

func TestComplexityFlipChangesLayoutNotValue(t *testing.T) {
	doc, err := tomlkit.ParseString("point = { x = 1, y = 2 }\n")
	require.NoError(t, err)

	v, ok := doc.Get("point")
	require.True(t, ok)
	pt := v.(interface {
		PinComplex(bool) error
		Unwrap() map[string]any
	})

	before := pt.Unwrap()
	require.NoError(t, pt.PinComplex(true))
	after := pt.Unwrap()

	assert.Equal(t, before, after)
	assert.Contains(t, tomlkit.Emit(doc), "[point]")
}

func TestMergeConvenienceWrapper(t *testing.T) {
	base, err := tomlkit.ParseString("a = 1\nb = 2\n")
	require.NoError(t, err)
	override, err := tomlkit.ParseString("a = 10\n")
	require.NoError(t, err)

	merged, err := tomlkit.Merge(base, override, nil)
	require.NoError(t, err)

	a, _ := merged.Get("a")
	assert.EqualValues(t, 10, tomlkit.ToNative(a))
	b, _ := merged.Get("b")
	assert.EqualValues(t, 2, tomlkit.ToNative(b))
}
