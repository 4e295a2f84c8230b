package validator

import (
	"fmt"
	"slices"

	"github.com/netrunnerdb/cardlint/internal/card"
	"github.com/netrunnerdb/cardlint/internal/report"
)

const absent = "<absent>"

// variant is one distinct value of an attribute. key is its compact JSON
// text, so 1 and "1" stay apart.
type variant struct {
	key     string
	display string
}

// printings collects, for each watched attribute, the distinct values seen
// for every title across the whole catalog.
type printings struct {
	attributes []string
	titles     []string
	seen       map[string]bool
	values     map[string]map[string][]variant // attribute -> title -> distinct values
}

func newPrintings(attributes []string) *printings {
	p := &printings{
		seen:   make(map[string]bool),
		values: make(map[string]map[string][]variant),
	}
	for _, a := range append([]string{"text", "stripped_text"}, attributes...) {
		if a == "" || slices.Contains(p.attributes, a) {
			continue
		}
		p.attributes = append(p.attributes, a)
		p.values[a] = make(map[string][]variant)
	}
	return p
}

func (p *printings) add(c *card.Card) {
	if !p.seen[c.Title] {
		p.seen[c.Title] = true
		p.titles = append(p.titles, c.Title)
	}
	for _, a := range p.attributes {
		v := variant{key: c.Attribute(a), display: absent}
		if v.key != "" {
			v.display = c.AttributeString(a)
		}
		known := slices.ContainsFunc(p.values[a][c.Title], func(o variant) bool { return o.key == v.key })
		if !known {
			p.values[a][c.Title] = append(p.values[a][c.Title], v)
		}
	}
}

// check reports one violation per attribute and title with more than one
// distinct value, listing every variant in the order first seen.
func (p *printings) check() []report.Violation {
	var vs []report.Violation
	for _, a := range p.attributes {
		for _, title := range p.titles {
			variants := p.values[a][title]
			if len(variants) < 2 {
				continue
			}
			vs = append(vs, report.Violation{
				Collection: cardsCollection,
				Subject:    fmt.Sprintf("title: '%s'", title),
				Message:    fmt.Sprintf("varying %s across printings", a),
				Details:    details(variants),
			})
		}
	}
	return vs
}

// details lists the variants for display. Values that would read the same
// once unquoted are shown as JSON instead.
func details(variants []variant) []string {
	out := make([]string, 0, len(variants))
	ambiguous := false
	for _, v := range variants {
		if slices.Contains(out, v.display) {
			ambiguous = true
		}
		out = append(out, v.display)
	}
	if !ambiguous {
		return out
	}
	for i, v := range variants {
		if v.key != "" {
			out[i] = v.key
		}
	}
	return out
}
