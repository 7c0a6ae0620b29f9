package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njalerikson/tomlkit/pkg/container"
	"github.com/njalerikson/tomlkit/pkg/items"
)

func TestTableSetAndGet(t *testing.T) {
	root := container.NewRoot()
	require.NoError(t, root.Set("name", items.NewString("toml", items.StyleBasic, false)))

	v, ok := root.Get("name")
	require.True(t, ok)
	assert.Equal(t, "toml", v.(*items.Scalar).StringVal)
	assert.Equal(t, []string{"name"}, root.Keys())
}

func TestTableSetPathCreatesIntermediates(t *testing.T) {
	root := container.NewRoot()
	require.NoError(t, root.SetPath(items.NewInteger(7, 10, false), "a", "b", "c"))

	v, ok := root.GetPath("a", "b", "c")
	require.True(t, ok)
	assert.EqualValues(t, 7, v.(*items.Scalar).IntVal)

	inner, ok := root.Get("a")
	require.True(t, ok)
	tbl := inner.(*container.Table)
	assert.False(t, tbl.IsRoot())
	assert.Same(t, root, tbl.Root())
}

func TestTableSetPathConflict(t *testing.T) {
	root := container.NewRoot()
	require.NoError(t, root.Set("a", items.NewBool(true)))
	err := root.SetPath(items.NewInteger(1, 10, false), "a", "b")
	assert.Error(t, err)
}

func TestTableCreateTableDuplicateKey(t *testing.T) {
	root := container.NewRoot()
	_, err := root.CreateTable("x")
	require.NoError(t, err)
	_, err = root.CreateTable("x")
	assert.Error(t, err)
}

func TestTableDeleteAndPop(t *testing.T) {
	root := container.NewRoot()
	require.NoError(t, root.Set("a", items.NewInteger(1, 10, false)))
	require.NoError(t, root.Set("b", items.NewInteger(2, 10, false)))

	v, ok := root.Pop("a")
	require.True(t, ok)
	assert.EqualValues(t, 1, v.(*items.Scalar).IntVal)
	assert.False(t, root.Contains("a"))
	assert.Equal(t, []string{"b"}, root.Keys())

	assert.True(t, root.Delete("b"))
	assert.Equal(t, 0, root.Len())
}

func TestTablePopItem(t *testing.T) {
	root := container.NewRoot()
	require.NoError(t, root.Set("a", items.NewInteger(1, 10, false)))
	require.NoError(t, root.Set("b", items.NewInteger(2, 10, false)))

	k, v, ok := root.PopItem()
	require.True(t, ok)
	assert.Equal(t, "b", k)
	assert.EqualValues(t, 2, v.(*items.Scalar).IntVal)
	assert.Equal(t, []string{"a"}, root.Keys())
}

func TestTableComplexityDerivedFromChildCount(t *testing.T) {
	root := container.NewRoot()
	child, err := root.CreateTable("t")
	require.NoError(t, err)

	assert.False(t, child.Complex())
	require.NoError(t, child.Set("a", items.NewInteger(1, 10, false)))
	require.NoError(t, child.Set("b", items.NewInteger(2, 10, false)))
	require.NoError(t, child.Set("c", items.NewInteger(3, 10, false)))
	assert.False(t, child.Complex())
	require.NoError(t, child.Set("d", items.NewInteger(4, 10, false)))
	assert.True(t, child.Complex())
}

func TestTableComplexityDerivedFromComment(t *testing.T) {
	root := container.NewRoot()
	child, err := root.CreateTable("t")
	require.NoError(t, err)
	assert.False(t, child.Complex())
	child.AppendComment("hi")
	assert.True(t, child.Complex())
}

func TestTablePinComplexRejectsRootUnpin(t *testing.T) {
	root := container.NewRoot()
	err := root.PinComplex(false)
	assert.Error(t, err)
}

func TestTablePinComplexRejectsUnpinWithComplexChild(t *testing.T) {
	root := container.NewRoot()
	parent, err := root.CreateTable("p")
	require.NoError(t, err)
	child, err := parent.CreateTable("c")
	require.NoError(t, err)
	require.NoError(t, child.PinComplex(true))

	err = parent.PinComplex(false)
	assert.Error(t, err)
}

func TestTableClearRecursesIntoChildren(t *testing.T) {
	root := container.NewRoot()
	child, err := root.CreateTable("t")
	require.NoError(t, err)
	require.NoError(t, child.Set("a", items.NewInteger(1, 10, false)))

	root.Clear()
	assert.Equal(t, 0, root.Len())
}

func TestTableSetReplacesValueKeepingPosition(t *testing.T) {
	root := container.NewRoot()
	require.NoError(t, root.Set("a", items.NewInteger(1, 10, false)))
	require.NoError(t, root.Set("b", items.NewInteger(2, 10, false)))
	require.NoError(t, root.Set("a", items.NewInteger(99, 10, false)))

	assert.Equal(t, []string{"a", "b"}, root.Keys())
	v, _ := root.Get("a")
	assert.EqualValues(t, 99, v.(*items.Scalar).IntVal)
}
