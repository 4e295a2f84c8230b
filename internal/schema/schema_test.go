package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netrunnerdb/cardlint/internal/document"
)

const cycleSchema = `{
    "$schema": "http://json-schema.org/draft-04/schema#",
    "type": "object",
    "required": ["code", "name"],
    "properties": {
        "code": {"type": "string", "minLength": 1},
        "name": {"type": "string"},
        "position": {"type": "integer"}
    }
}`

func writeSchema(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cycle_schema.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func parse(t *testing.T, raw string) any {
	t.Helper()
	doc, err := document.Parse("inline", []byte(raw))
	require.NoError(t, err)
	return doc.Value
}

func TestLoadAndCheck(t *testing.T) {
	s, err := Load(writeSchema(t, cycleSchema))
	require.NoError(t, err)

	assert.Nil(t, s.Check(parse(t, `{"code": "core", "name": "Core Set", "position": 1}`)))
}

func TestCheckReportsEveryCause(t *testing.T) {
	s, err := Load(writeSchema(t, cycleSchema))
	require.NoError(t, err)

	failure := s.Check(parse(t, `{"code": 7, "position": "one"}`))
	require.NotNil(t, failure)
	require.GreaterOrEqual(t, len(failure.Causes), 2)

	var locations []string
	for _, c := range failure.Causes {
		locations = append(locations, c.Location)
		assert.NotEmpty(t, c.Message)
	}
	assert.Contains(t, locations, "/code")
	assert.Contains(t, locations, "/position")
	assert.Contains(t, failure.Error(), "at '/code'")
}

func TestLoadMalformedSchema(t *testing.T) {
	_, err := Load(writeSchema(t, `{"type": 12}`))
	require.Error(t, err)

	var invalid *InvalidSchemaError
	assert.True(t, errors.As(err, &invalid))
	assert.Contains(t, err.Error(), "not valid Draft 4 JSON schema")
}

func TestLoadUnparseableSchema(t *testing.T) {
	_, err := Load(writeSchema(t, `{"type": `))
	require.Error(t, err)
	assert.True(t, document.IsParseError(err))
}

func TestLoadMissingSchema(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestDefaultDraftIsDraft4(t *testing.T) {
	// exclusiveMaximum is a boolean in draft 4 and a number in later drafts.
	s, err := Load(writeSchema(t, `{"type": "integer", "maximum": 3, "exclusiveMaximum": true}`))
	require.NoError(t, err)

	assert.Nil(t, s.Check(parse(t, `2`)))
	assert.NotNil(t, s.Check(parse(t, `3`)))
}
