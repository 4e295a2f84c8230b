package card

import (
	"encoding/json"

	gojson "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// PrintingAttributes must hold the same value on every printing of a title.
var PrintingAttributes = []string{
	"advancement_cost", "agenda_points", "base_link", "cost", "deck_limit",
	"faction_code", "faction_cost", "influence_limit", "keywords", "memory_cost",
	"minimum_deck_size", "side_code", "strength", "stripped_text", "stripped_title",
	"text", "trash_cost", "type_code", "type_uniqueness",
}

// Card is a single printing of a card in a pack file
type Card struct {
	Code          string `json:"code"`           // Printing code (e.g., 01001)
	Title         string `json:"title"`          // Printed title
	StrippedTitle string `json:"stripped_title"` // ASCII-only title
	Text          string `json:"text"`           // Rules text with formatting markup
	StrippedText  string `json:"stripped_text"`  // Rules text with markup removed
	PackCode      string `json:"pack_code"`
	FactionCode   string `json:"faction_code"`
	TypeCode      string `json:"type_code"`
	SideCode      string `json:"side_code"`
	Position      int    `json:"position"`
	Quantity      int    `json:"quantity"`

	raw json.RawMessage
}

// Attribute returns the compact JSON text of a top-level attribute, or ""
// when the card does not set it. Two attributes are equal exactly when
// their Attribute values are.
func (c *Card) Attribute(name string) string {
	raw := gjson.GetBytes(c.raw, gjson.Escape(name)).Raw
	if raw == "" {
		return ""
	}
	return string(pretty.Ugly([]byte(raw)))
}

// AttributeString returns a display form of an attribute: strings unquoted,
// other values as JSON.
func (c *Card) AttributeString(name string) string {
	r := gjson.GetBytes(c.raw, gjson.Escape(name))
	if r.Type == gjson.String {
		return r.String()
	}
	return r.Raw
}

// Raw returns the record as it appeared in its pack file.
func (c *Card) Raw() json.RawMessage {
	return c.raw
}

// Cycle groups packs released together
type Cycle struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Position int    `json:"position"`
	Size     int    `json:"size"`
	Rotated  bool   `json:"rotated"`
}

// Pack is a released collection of cards
type Pack struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	CycleCode   string `json:"cycle_code"`
	Position    int    `json:"position"`
	Size        int    `json:"size"`
	DateRelease string `json:"date_release"`
}

// Set is a pack in the older sets.json layout, before cycles existed.
type Set struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Number      int    `json:"number"`
	CycleNumber int    `json:"cyclenumber"`
}

// SetType is a kind of release (core, expansion, booster pack...)
type SetType struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Faction is a card's allegiance within a side
type Faction struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	SideCode string `json:"side_code"`
	IsMini   bool   `json:"is_mini"`
	Color    string `json:"color"`
}

// Type is a card's functional category. A nil SideCode means the type is
// valid for either side.
type Type struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	SideCode  *string `json:"side_code"`
	IsSubtype bool    `json:"is_subtype"`
	Position  int     `json:"position"`
}

// AllowsSide reports whether a card of the given side may have this type.
func (t Type) AllowsSide(side string) bool {
	return t.SideCode == nil || *t.SideCode == side
}

// Side is one of the two play perspectives (corp, runner)
type Side struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Rotation names the cycles excluded from a constructed card pool
type Rotation struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	DateStart string   `json:"date_start"`
	Rotated   []string `json:"rotated"`
}

// Decode decodes a single record into a typed value.
func Decode[T any](raw []byte) (T, error) {
	var v T
	err := gojson.Unmarshal(raw, &v)
	return v, err
}

// DecodeCard decodes a card and keeps its raw form for attribute lookups.
func DecodeCard(raw []byte) (Card, error) {
	c, err := Decode[Card](raw)
	if err != nil {
		return Card{}, err
	}
	c.raw = append(json.RawMessage(nil), raw...)
	return c, nil
}

// DecodeCards decodes a whole pack file.
func DecodeCards(raw []byte) ([]Card, error) {
	var records []json.RawMessage
	if err := gojson.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	cards := make([]Card, 0, len(records))
	for _, r := range records {
		c, err := DecodeCard(r)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// Describe extracts the identifying fields of an undecoded record for use in
// diagnostics.
func Describe(raw []byte) (code, name string) {
	fields := gjson.GetManyBytes(raw, "code", "name", "title")
	code = fields[0].String()
	name = fields[1].String()
	if name == "" {
		name = fields[2].String()
	}
	return code, name
}
