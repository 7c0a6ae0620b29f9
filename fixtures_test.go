package tomlkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njalerikson/tomlkit"
)

// These fixtures exercise the scenario classes named in spec.md's Open
// Question ("example", "fruit", "hard", "pyproject", "0.5.0", "test"):
// the upstream files themselves aren't part of this repo's source tree,
// so each fixture below is authored to the feature set its name
// designates rather than reproduced byte-for-byte from an external
// file. "0.5.0" and "pyproject" are shaped directly from the structural
// assertions in original_source's test_toml_document.py
// (test_toml_document_with_dotted_keys and
// test_toml_document_super_table_with_different_sub_sections); "fruit",
// "hard", and "test" have no such structural grounding available and
// are instead generic documents covering what their names imply
// (nested arrays of tables, escape-heavy strings, a general mixed-
// feature smoke test).

func TestFixtureZeroFiveZero(t *testing.T) {
	src := "name = \"Orange\"\n" +
		"\n" +
		"physical.color = \"orange\"\n" +
		"physical.shape = \"round\"\n" +
		"\n" +
		"site.\"google.com\" = true\n" +
		"\n" +
		"[table]\n" +
		"a.b.c = 1\n" +
		"a.b.d = 2\n" +
		"a.c = 3\n"

	doc, err := tomlkit.ParseString(src)
	require.NoError(t, err)
	assert.Equal(t, src, tomlkit.Emit(doc))

	color, ok := doc.GetPath("physical", "color")
	require.True(t, ok)
	assert.Equal(t, "orange", tomlkit.ToNative(color))

	google, ok := doc.GetPath("site", "google.com")
	require.True(t, ok)
	assert.Equal(t, true, tomlkit.ToNative(google))

	d, ok := doc.GetPath("table", "a", "b", "d")
	require.True(t, ok)
	assert.EqualValues(t, 2, tomlkit.ToNative(d))

	once := tomlkit.Emit(doc)
	doc2, err := tomlkit.ParseString(once)
	require.NoError(t, err)
	assert.Equal(t, once, tomlkit.Emit(doc2))
}

func TestFixturePyproject(t *testing.T) {
	src := "[tool.poetry]\n" +
		"name = \"tomlkit\"\n" +
		"version = \"0.5.0\"\n" +
		"\n" +
		"[tool.black]\n" +
		"line-length = 88\n" +
		"\n" +
		"[[tool.foo]]\n" +
		"key = 1\n" +
		"\n" +
		"[[tool.foo]]\n" +
		"key = 2\n"

	doc, err := tomlkit.ParseString(src)
	require.NoError(t, err)
	assert.Equal(t, src, tomlkit.Emit(doc))

	name, ok := doc.GetPath("tool", "poetry", "name")
	require.True(t, ok)
	assert.Equal(t, "tomlkit", tomlkit.ToNative(name))

	length, ok := doc.GetPath("tool", "black", "line-length")
	require.True(t, ok)
	assert.EqualValues(t, 88, tomlkit.ToNative(length))

	foo, ok := doc.GetPath("tool", "foo")
	require.True(t, ok)
	native := tomlkit.ToNative(foo).([]any)
	assert.Len(t, native, 2)
}

func TestFixtureFruit(t *testing.T) {
	src := "[[fruits]]\n" +
		"name = \"apple\"\n" +
		"\n" +
		"[fruits.physical]\n" +
		"color = \"red\"\n" +
		"shape = \"round\"\n" +
		"\n" +
		"[[fruits.varieties]]\n" +
		"name = \"red delicious\"\n" +
		"\n" +
		"[[fruits.varieties]]\n" +
		"name = \"granny smith\"\n" +
		"\n" +
		"[[fruits]]\n" +
		"name = \"banana\"\n" +
		"\n" +
		"[[fruits.varieties]]\n" +
		"name = \"plantain\"\n"

	doc, err := tomlkit.ParseString(src)
	require.NoError(t, err)
	assert.Equal(t, src, tomlkit.Emit(doc))

	fruits, ok := doc.Get("fruits")
	require.True(t, ok)
	native := tomlkit.ToNative(fruits).([]any)
	require.Len(t, native, 2)

	apple := native[0].(map[string]any)
	varieties := apple["varieties"].([]any)
	assert.Len(t, varieties, 2)
}

func TestFixtureHard(t *testing.T) {
	src := "the-hard-key = \"You'll need quotes for this one\"\n" +
		"\"ʎǝʞ\" = \"unicode key\"\n" +
		"\"quoted \\\"key\\\"\" = \"nested quotes\"\n" +
		"escapes = \"tab:\\tnewline:\\nbackslash:\\\\end\"\n" +
		"multiline = \"\"\"\n" +
		"line one\n" +
		"line two\"\"\"\n" +
		"literal = 'C:\\Users\\nodejs\\templates'\n"

	doc, err := tomlkit.ParseString(src)
	require.NoError(t, err)
	assert.Equal(t, src, tomlkit.Emit(doc))

	once := tomlkit.Emit(doc)
	doc2, err := tomlkit.ParseString(once)
	require.NoError(t, err)
	assert.Equal(t, once, tomlkit.Emit(doc2))
}

func TestFixtureGeneralSmokeTest(t *testing.T) {
	src := "title = \"general smoke test\"\n" +
		"\n" +
		"[owner]\n" +
		"name = \"tomlkit\"\n" +
		"dob = 1979-05-27T07:32:00-08:00\n" +
		"\n" +
		"[database]\n" +
		"enabled = true\n" +
		"ports = [8000, 8001, 8002]\n" +
		"data = [[\"gamma\", \"delta\"], [1, 2]]\n" +
		"\n" +
		"[servers.alpha]\n" +
		"ip = \"10.0.0.1\"\n" +
		"\n" +
		"[servers.beta]\n" +
		"ip = \"10.0.0.2\"\n"

	doc, err := tomlkit.ParseString(src)
	require.NoError(t, err)
	assert.Equal(t, src, tomlkit.Emit(doc))

	ports, ok := doc.GetPath("database", "ports")
	require.True(t, ok)
	assert.Equal(t, []any{int64(8000), int64(8001), int64(8002)}, tomlkit.ToNative(ports))

	betaIP, ok := doc.GetPath("servers", "beta", "ip")
	require.True(t, ok)
	assert.Equal(t, "10.0.0.2", tomlkit.ToNative(betaIP))
}
