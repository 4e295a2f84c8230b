package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, base, rel, content string) {
	t.Helper()
	path := filepath.Join(base, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newRepo(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	writeFile(t, base, "packs.json", `[
        {"code": "core", "name": "Core Set", "cycle_code": "core", "position": 1},
        {"code": "sg", "name": "System Gateway", "cycle_code": "sg", "position": 1}
    ]`)
	writeFile(t, base, "pack/core.json", `[
        {"code": "01050", "title": "Sure Gamble", "text": "Gain 9[credit].", "pack_code": "core"},
        {"code": "01051", "title": "Café Run", "stripped_title": "Cafe Run", "pack_code": "core"}
    ]`)
	writeFile(t, base, "pack/sg.json", `[
        {"code": "30031", "title": "Sure Gamble", "text": "Gain 9[credit]!", "pack_code": "sg"}
    ]`)
	return base
}

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog(newRepo(t), "")
	require.NoError(t, err)

	assert.Len(t, c.Packs, 2)
	require.Len(t, c.Printings, 3)
	assert.Equal(t, "core", c.Printings[0].Pack.Code)
	assert.Equal(t, "sg", c.Printings[2].Pack.Code)
}

func TestLoadCatalogMissingPack(t *testing.T) {
	base := newRepo(t)
	require.NoError(t, os.Remove(filepath.Join(base, "pack", "sg.json")))

	_, err := LoadCatalog(base, "")
	assert.ErrorContains(t, err, "error reading pack sg")
}

func TestLoadCatalogNoPacks(t *testing.T) {
	_, err := LoadCatalog(t.TempDir(), "")
	assert.ErrorContains(t, err, "packs.json not found")
}

func TestLookup(t *testing.T) {
	c, err := LoadCatalog(newRepo(t), "")
	require.NoError(t, err)

	found, err := c.Lookup("sure gamble")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "01050", found[0].Card.Code)
	assert.Equal(t, "30031", found[1].Card.Code)

	found, err = c.Lookup("30031")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "System Gateway", found[0].Pack.Name)

	found, err = c.Lookup("cafe run")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	_, err = c.Lookup("Hedge Fund")
	assert.ErrorContains(t, err, "card not found")
}

func TestTranslations(t *testing.T) {
	base := newRepo(t)
	writeFile(t, base, "translations/fr/pack/core.fr.json", `[{"code": "01050", "title": "Pari risqué"}]`)

	c, err := LoadCatalog(base, "")
	require.NoError(t, err)
	require.NoError(t, c.LoadTranslations("fr"))

	assert.Equal(t, "Pari risqué", c.Title("fr", c.Printings[0].Card))
	assert.Equal(t, "Café Run", c.Title("fr", c.Printings[1].Card))
	assert.Equal(t, "Sure Gamble", c.Title("", c.Printings[0].Card))

	assert.Error(t, c.LoadTranslations("de"))
}
