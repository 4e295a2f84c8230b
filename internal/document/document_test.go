package document

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "cycles.json", `[{"code": "core", "position": 1}]`)

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)

	values, ok := doc.Values()
	require.True(t, ok)
	require.Len(t, values, 1)
	record := values[0].(map[string]any)
	assert.Equal(t, "core", record["code"])
	assert.Equal(t, json.Number("1"), record["position"])
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeFile(t, "packs.json", `[{"code": "core",}]`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, IsParseError(err))
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestLoadTrailingGarbage(t *testing.T) {
	path := writeFile(t, "packs.json", `[] []`)

	_, err := Load(path)
	assert.True(t, IsParseError(err))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.False(t, IsParseError(err))
	assert.True(t, os.IsNotExist(err))
}

func TestElements(t *testing.T) {
	doc, err := Parse("inline", []byte(`[{"code": "a"}, {"code": "b"}]`))
	require.NoError(t, err)

	elements, ok := doc.Elements()
	require.True(t, ok)
	require.Len(t, elements, 2)
	assert.JSONEq(t, `{"code": "b"}`, string(elements[1]))

	doc, err = Parse("inline", []byte(`{"code": "a"}`))
	require.NoError(t, err)
	_, ok = doc.Elements()
	assert.False(t, ok)
}

func TestCanonical(t *testing.T) {
	doc, err := Parse("inline", []byte(`[{"title":"Déjà Vu","code":"01002","cost":2,"keywords":[]}]`))
	require.NoError(t, err)

	formatted, err := Canonical(doc.Value)
	require.NoError(t, err)

	want := "[\n" +
		"    {\n" +
		"        \"code\": \"01002\",\n" +
		"        \"cost\": 2,\n" +
		"        \"keywords\": [],\n" +
		"        \"title\": \"Déjà Vu\"\n" +
		"    }\n" +
		"]\n"
	assert.Equal(t, want, string(formatted))
}

func TestIsCanonical(t *testing.T) {
	doc, err := Parse("inline", []byte("{\n    \"a\": 1\n}\n"))
	require.NoError(t, err)
	ok, err := doc.IsCanonical()
	require.NoError(t, err)
	assert.True(t, ok)

	doc, err = Parse("inline", []byte(`{"a": 1}`))
	require.NoError(t, err)
	ok, err = doc.IsCanonical()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWriteCanonical(t *testing.T) {
	path := writeFile(t, "mwl.json", `{"b": [1, 2], "a": "x & y"}`)

	doc, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, doc.WriteCanonical())

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"a\": \"x & y\",\n    \"b\": [\n        1,\n        2\n    ]\n}\n", string(onDisk))

	reloaded, err := Load(path)
	require.NoError(t, err)
	ok, err := reloaded.IsCanonical()
	require.NoError(t, err)
	assert.True(t, ok)
}

func jsonValue(depth int) *rapid.Generator[any] {
	return rapid.Custom(func(t *rapid.T) any {
		kind := rapid.IntRange(0, 5).Draw(t, "kind")
		if depth <= 0 && kind >= 4 {
			kind = 0
		}
		switch kind {
		case 0:
			return rapid.String().Draw(t, "string")
		case 1:
			return json.Number(strconv.FormatInt(rapid.Int64().Draw(t, "int"), 10))
		case 2:
			return rapid.Bool().Draw(t, "bool")
		case 3:
			return nil
		case 4:
			return rapid.SliceOfN(jsonValue(depth-1), 0, 4).Draw(t, "array")
		default:
			return rapid.MapOfN(rapid.String(), jsonValue(depth-1), 0, 4).Draw(t, "object")
		}
	})
}

func TestCanonicalIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		value := jsonValue(3).Draw(rt, "value")

		first, err := Canonical(value)
		require.NoError(rt, err)

		doc, err := Parse("generated", first)
		require.NoError(rt, err)
		second, err := Canonical(doc.Value)
		require.NoError(rt, err)

		assert.Equal(rt, string(first), string(second))
		ok, err := doc.IsCanonical()
		require.NoError(rt, err)
		assert.True(rt, ok)
	})
}
