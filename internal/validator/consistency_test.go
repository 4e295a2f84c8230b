package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netrunnerdb/cardlint/internal/card"
)

func decode(t *testing.T, raw string) *card.Card {
	t.Helper()
	c, err := card.DecodeCard([]byte(raw))
	require.NoError(t, err)
	return &c
}

func TestNewPrintingsAttributes(t *testing.T) {
	p := newPrintings([]string{"flavor", "text", "", "flavor"})
	assert.Equal(t, []string{"text", "stripped_text", "flavor"}, p.attributes)
}

func TestPrintingsCheck(t *testing.T) {
	p := newPrintings(nil)
	p.add(decode(t, `{"title": "Hedge Fund", "text": "Gain 9[credit].", "stripped_text": "Gain 9 credits."}`))
	p.add(decode(t, `{"title": "Sure Gamble", "text": "Gain 9[credit].", "stripped_text": "Gain 9 credits."}`))
	p.add(decode(t, `{"title": "Hedge Fund", "text": "Gain 9[credit]!", "stripped_text": "Gain 9 credits."}`))
	p.add(decode(t, `{"title": "Hedge Fund", "text": "Gain 9[credit].", "stripped_text": "Gain 9 credits."}`))
	p.add(decode(t, `{"title": "Sure Gamble", "text": "Gain 9[credit]."}`))

	vs := p.check()
	require.Len(t, vs, 2)

	assert.Equal(t, "title: 'Hedge Fund'", vs[0].Subject)
	assert.Equal(t, "varying text across printings", vs[0].Message)
	assert.Equal(t, []string{"Gain 9[credit].", "Gain 9[credit]!"}, vs[0].Details)

	assert.Equal(t, "title: 'Sure Gamble'", vs[1].Subject)
	assert.Equal(t, "varying stripped_text across printings", vs[1].Message)
	assert.Equal(t, []string{"Gain 9 credits.", absent}, vs[1].Details)
}

func TestPrintingsCompareJSONValues(t *testing.T) {
	p := newPrintings([]string{"cost", "keywords"})
	p.add(decode(t, `{"title": "Sure Gamble", "cost": 1, "keywords": ["Gray Ops"]}`))
	p.add(decode(t, `{"title": "Sure Gamble", "cost": "1", "keywords": [ "Gray Ops" ]}`))

	vs := p.check()
	require.Len(t, vs, 1)
	assert.Equal(t, "varying cost across printings", vs[0].Message)
	assert.Equal(t, []string{"1", `"1"`}, vs[0].Details)
}

func TestPrintingsSingleTitle(t *testing.T) {
	p := newPrintings([]string{"cost"})
	p.add(decode(t, `{"title": "Ice Wall", "cost": 1}`))
	p.add(decode(t, `{"title": "Ice Wall", "cost": 1}`))
	assert.Empty(t, p.check())
}
