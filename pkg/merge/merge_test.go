package merge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njalerikson/tomlkit/pkg/container"
	"github.com/njalerikson/tomlkit/pkg/items"
	"github.com/njalerikson/tomlkit/pkg/merge"
	"github.com/njalerikson/tomlkit/pkg/parser"
)

func parseTable(t *testing.T, src string) *container.Table {
	t.Helper()
	tbl, err := parser.Parse([]byte(src))
	require.NoError(t, err)
	return tbl
}

func TestNewMergerWithDefaultOptions(t *testing.T) {
	m := merge.NewMerger(merge.DefaultOptions())
	require.NotNil(t, m)
}

func TestDeepMergeOverridesLeafAndKeepsBaseOnly(t *testing.T) {
	base := parseTable(t, "a = 1\nb = 2\n")
	override := parseTable(t, "a = 10\nc = 3\n")

	m := merge.NewMerger(merge.DefaultOptions())
	result, err := m.Merge(base, override)
	require.NoError(t, err)

	a, _ := result.Get("a")
	assert.EqualValues(t, 10, a.(*items.Scalar).IntVal)
	b, ok := result.Get("b")
	require.True(t, ok)
	assert.EqualValues(t, 2, b.(*items.Scalar).IntVal)
	c, _ := result.Get("c")
	assert.EqualValues(t, 3, c.(*items.Scalar).IntVal)

	// base/override are untouched
	aBase, _ := base.Get("a")
	assert.EqualValues(t, 1, aBase.(*items.Scalar).IntVal)
}

func TestDeepMergeRecursesIntoNestedTables(t *testing.T) {
	base := parseTable(t, "[a]\nx = 1\ny = 2\n")
	override := parseTable(t, "[a]\nx = 10\n")

	m := merge.NewMerger(merge.DefaultOptions())
	result, err := m.Merge(base, override)
	require.NoError(t, err)

	v, ok := result.GetPath("a", "x")
	require.True(t, ok)
	assert.EqualValues(t, 10, v.(*items.Scalar).IntVal)
	v, ok = result.GetPath("a", "y")
	require.True(t, ok)
	assert.EqualValues(t, 2, v.(*items.Scalar).IntVal)
}

func TestArrayReplaceIsDefault(t *testing.T) {
	base := parseTable(t, "a = [1, 2, 3]\n")
	override := parseTable(t, "a = [9]\n")

	m := merge.NewMerger(merge.DefaultOptions())
	result, err := m.Merge(base, override)
	require.NoError(t, err)

	v, _ := result.Get("a")
	arr := v.(*container.Array)
	assert.Equal(t, 1, arr.Len())
}

func TestArrayAppendStrategy(t *testing.T) {
	base := parseTable(t, "a = [1, 2]\n")
	override := parseTable(t, "a = [3, 4]\n")

	opts := merge.DefaultOptions().WithArrayStrategy(merge.ArrayAppend)
	m := merge.NewMerger(opts)
	result, err := m.Merge(base, override)
	require.NoError(t, err)

	v, _ := result.Get("a")
	arr := v.(*container.Array)
	assert.Equal(t, 4, arr.Len())
}

func TestShallowMergeDoesNotRecurse(t *testing.T) {
	base := parseTable(t, "[a]\nx = 1\ny = 2\n")
	override := parseTable(t, "[a]\nx = 10\n")

	opts := merge.DefaultOptions().WithStrategy(merge.StrategyShallow)
	m := merge.NewMerger(opts)
	result, err := m.Merge(base, override)
	require.NoError(t, err)

	_, hasY := result.GetPath("a", "y")
	assert.False(t, hasY, "shallow merge should replace 'a' wholesale, dropping 'y'")
}

func TestOverrideStrategyDiscardsBase(t *testing.T) {
	base := parseTable(t, "a = 1\nb = 2\n")
	override := parseTable(t, "a = 10\n")

	opts := merge.DefaultOptions().WithStrategy(merge.StrategyOverride)
	m := merge.NewMerger(opts)
	result, err := m.Merge(base, override)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Len())
	_, hasB := result.Get("b")
	assert.False(t, hasB)
}

func TestEmptyStringOverrideDoesNotClobberByDefault(t *testing.T) {
	base := parseTable(t, "name = \"prod\"\n")
	override := parseTable(t, "name = \"\"\n")

	m := merge.NewMerger(merge.DefaultOptions())
	result, err := m.Merge(base, override)
	require.NoError(t, err)

	v, _ := result.Get("name")
	assert.Equal(t, "prod", v.(*items.Scalar).StringVal)
}

func TestTableUpdateIsShallowAndNonDestructive(t *testing.T) {
	base := parseTable(t, "a = 1\nb = 2\n")
	patch := parseTable(t, "b = 20\nc = 3\n")

	require.NoError(t, base.Update(patch))
	a, _ := base.Get("a")
	assert.EqualValues(t, 1, a.(*items.Scalar).IntVal)
	b, _ := base.Get("b")
	assert.EqualValues(t, 20, b.(*items.Scalar).IntVal)
	c, _ := base.Get("c")
	assert.EqualValues(t, 3, c.(*items.Scalar).IntVal)

	// patch is untouched, and doesn't share nodes with base
	pb, _ := patch.Get("b")
	assert.EqualValues(t, 20, pb.(*items.Scalar).IntVal)
	assert.NotSame(t, b, pb)
}
