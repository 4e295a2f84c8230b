package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sureGamble = `{
    "code": "01050",
    "title": "Sure Gamble",
    "stripped_title": "Sure Gamble",
    "text": "Gain 9[credit].",
    "stripped_text": "Gain 9 credits.",
    "pack_code": "core",
    "faction_code": "neutral-runner",
    "type_code": "event",
    "side_code": "runner",
    "cost": 5,
    "keywords": "Gray Ops",
    "quantity": 3
}`

func TestDecodeCard(t *testing.T) {
	c, err := DecodeCard([]byte(sureGamble))
	require.NoError(t, err)

	assert.Equal(t, "01050", c.Code)
	assert.Equal(t, "Sure Gamble", c.Title)
	assert.Equal(t, "core", c.PackCode)
	assert.Equal(t, "runner", c.SideCode)
	assert.Equal(t, 3, c.Quantity)
	assert.JSONEq(t, sureGamble, string(c.Raw()))
}

func TestCardAttribute(t *testing.T) {
	c, err := DecodeCard([]byte(sureGamble))
	require.NoError(t, err)

	assert.Equal(t, "5", c.Attribute("cost"))
	assert.Equal(t, `"Gray Ops"`, c.Attribute("keywords"))
	assert.Equal(t, "Gray Ops", c.AttributeString("keywords"))
	assert.Equal(t, "", c.Attribute("strength"))
}

func TestAttributeKeepsJSONType(t *testing.T) {
	number, err := DecodeCard([]byte(`{"title": "Sure Gamble", "cost": 1, "keywords": [ "Gray Ops",  "Run" ]}`))
	require.NoError(t, err)
	text, err := DecodeCard([]byte(`{"title": "Sure Gamble", "cost": "1"}`))
	require.NoError(t, err)

	assert.NotEqual(t, number.Attribute("cost"), text.Attribute("cost"))
	assert.Equal(t, number.AttributeString("cost"), text.AttributeString("cost"))
	assert.Equal(t, `["Gray Ops","Run"]`, number.Attribute("keywords"))
}

func TestDecodeCardWrongType(t *testing.T) {
	_, err := DecodeCard([]byte(`{"code": 5}`))
	assert.Error(t, err)
}

func TestDecodeCards(t *testing.T) {
	cards, err := DecodeCards([]byte(`[` + sureGamble + `, {"code": "01051", "title": "Easy Mark"}]`))
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "Easy Mark", cards[1].Title)
	assert.Equal(t, "01051", gjsonCode(cards[1]))
}

func gjsonCode(c Card) string {
	code, _ := Describe(c.Raw())
	return code
}

func TestTypeAllowsSide(t *testing.T) {
	ice, err := Decode[Type]([]byte(`{"code": "ice", "name": "ICE", "side_code": "corp"}`))
	require.NoError(t, err)
	identity, err := Decode[Type]([]byte(`{"code": "identity", "name": "Identity", "side_code": null}`))
	require.NoError(t, err)

	assert.True(t, ice.AllowsSide("corp"))
	assert.False(t, ice.AllowsSide("runner"))
	assert.True(t, identity.AllowsSide("corp"))
	assert.True(t, identity.AllowsSide("runner"))
}

func TestDescribe(t *testing.T) {
	code, name := Describe([]byte(`{"code": "core", "name": "Core Set"}`))
	assert.Equal(t, "core", code)
	assert.Equal(t, "Core Set", name)

	code, name = Describe([]byte(sureGamble))
	assert.Equal(t, "01050", code)
	assert.Equal(t, "Sure Gamble", name)

	code, name = Describe([]byte(`{}`))
	assert.Empty(t, code)
	assert.Empty(t, name)
}
