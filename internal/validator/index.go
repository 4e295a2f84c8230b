package validator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/netrunnerdb/cardlint/internal/card"
	"github.com/netrunnerdb/cardlint/internal/report"
	"github.com/netrunnerdb/cardlint/internal/schema"
)

// Table is a validated collection in file order, indexed by code. A nil
// *Table means the collection could not be loaded.
type Table[T any] struct {
	Items  []T
	byCode map[string]T

	// listed holds the code of every element in the document, including
	// those that failed validation.
	listed []string
}

func newTable[T any]() *Table[T] {
	return &Table[T]{byCode: make(map[string]T)}
}

func (t *Table[T]) add(code string, item T) {
	t.Items = append(t.Items, item)
	t.byCode[code] = item
}

// Get looks an item up by code.
func (t *Table[T]) Get(code string) (T, bool) {
	item, ok := t.byCode[code]
	return item, ok
}

// Has reports whether code is known.
func (t *Table[T]) Has(code string) bool {
	_, ok := t.byCode[code]
	return ok
}

// Index holds the lookup tables that card and rotation checks run against.
type Index struct {
	Cycles   *Table[card.Cycle]
	SetTypes *Table[card.SetType]
	Packs    *Table[card.Pack]
	Factions *Table[card.Faction]
	Types    *Table[card.Type]
	Sides    *Table[card.Side]
	Sets     *Table[card.Set]
}

// collection describes an index document and the schema its elements follow.
type collection struct {
	name   string
	file   string
	schema string
}

var (
	cyclesCollection    = collection{name: "cycles", file: "cycles.json", schema: "cycle_schema.json"}
	setTypesCollection  = collection{name: "set_types", file: "set_types.json", schema: "set_type_schema.json"}
	packsCollection     = collection{name: "packs", file: "packs.json", schema: "pack_schema.json"}
	factionsCollection  = collection{name: "factions", file: "factions.json", schema: "faction_schema.json"}
	typesCollection     = collection{name: "types", file: "types.json", schema: "type_schema.json"}
	sidesCollection     = collection{name: "sides", file: "sides.json", schema: "side_schema.json"}
	rotationsCollection = collection{name: "rotations", file: "rotations.json", schema: "rotations_schema.json"}
	setsCollection      = collection{name: "sets", file: "sets.json", schema: "set_schema.json"}
)

// loadCollection loads an index document, checks each element against the
// collection schema and decodes the ones that pass. It returns nil when the
// document is unreadable, is not an array, or its schema is unusable.
// failed is the number of elements left out.
func loadCollection[T any](v *Validator, c collection, code func(T) string) (t *Table[T], failed int) {
	v.logger.Info(fmt.Sprintf("Loading %s...", c.file))
	doc := v.load(c.name, filepath.Join(v.BasePath, c.file))
	if doc == nil {
		return nil, 0
	}

	elements, ok := doc.Elements()
	if !ok {
		v.Results.Record(report.Violation{Collection: c.name, Message: fmt.Sprintf("insides of %s are not a list", c.file)})
		return nil, 0
	}
	values, _ := doc.Values()

	sch := v.loadSchema(c.name, c.schema)
	if sch == nil {
		return nil, 0
	}

	t = newTable[T]()
	for i, raw := range elements {
		elementCode, elementName := card.Describe(raw)
		if elementCode != "" {
			t.listed = append(t.listed, elementCode)
		}
		v.logger.Debug(fmt.Sprintf("Validating %s %s...", strings.TrimSuffix(c.name, "s"), elementName))

		if failure := sch.Check(values[i]); failure != nil {
			v.Results.Record(report.Violation{
				Collection: c.name,
				Subject:    subject(elementCode, elementName),
				Message:    "schema validation failed",
				Details:    causes(failure.Causes),
			})
			failed++
			continue
		}
		item, err := card.Decode[T](raw)
		if err != nil {
			v.Results.Record(report.Violation{
				Collection: c.name,
				Subject:    subject(elementCode, elementName),
				Message:    fmt.Sprintf("cannot decode record: %v", err),
			})
			failed++
			continue
		}
		t.add(code(item), item)
	}
	return t, failed
}

func (v *Validator) buildCycles() error {
	v.index.Cycles, _ = loadCollection(v, cyclesCollection, func(c card.Cycle) string { return c.Code })
	return nil
}

func (v *Validator) buildSetTypes() error {
	if !fileExists(filepath.Join(v.BasePath, setTypesCollection.file)) {
		v.logger.Info(fmt.Sprintf("No %s, skipping set type validation", setTypesCollection.file))
		return nil
	}
	v.index.SetTypes, _ = loadCollection(v, setTypesCollection, func(s card.SetType) string { return s.Code })
	if v.index.SetTypes == nil {
		return nil
	}
	for _, st := range v.index.SetTypes.Items {
		if want := setTypeCode(st.Name); st.Code != want {
			v.Results.Record(report.Violation{
				Collection: setTypesCollection.name,
				Subject:    subject(st.Code, st.Name),
				Message:    fmt.Sprintf("set type code should be '%s'", want),
			})
		}
	}
	return nil
}

// setTypeCode derives the code a set type must have from its name.
func setTypeCode(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

func (v *Validator) buildPacks() error {
	v.index.Packs, _ = loadCollection(v, packsCollection, func(p card.Pack) string { return p.Code })
	if v.index.Packs == nil {
		return nil
	}

	if v.index.Cycles == nil {
		v.logger.Warn("Couldn't open cycles file correctly, skipping pack cycle checks...")
	} else {
		for _, p := range v.index.Packs.Items {
			if !v.index.Cycles.Has(p.CycleCode) {
				v.Results.Record(report.Violation{
					Collection: packsCollection.name,
					Subject:    subject(p.Code, p.Name),
					Message:    fmt.Sprintf("Pack %s has bad cycle %s", p.Name, p.CycleCode),
				})
			}
		}
	}

	for _, code := range v.index.Packs.listed {
		if err := checkFileAccess(v.packFile(code)); err != nil {
			return err
		}
		if !v.index.Packs.Has(code) {
			v.logger.Warn(fmt.Sprintf("Pack %s failed validation, skipping its cards...", code))
		}
	}
	return nil
}

func (v *Validator) buildFactions() error {
	v.index.Factions, _ = loadCollection(v, factionsCollection, func(f card.Faction) string { return f.Code })
	return nil
}

func (v *Validator) buildTypes() error {
	v.index.Types, _ = loadCollection(v, typesCollection, func(t card.Type) string { return t.Code })
	return nil
}

func (v *Validator) buildSides() error {
	v.index.Sides, _ = loadCollection(v, sidesCollection, func(s card.Side) string { return s.Code })
	return nil
}

func (v *Validator) packFile(code string) string {
	return filepath.Join(v.PackPath, code+".json")
}

func causes(cs []schema.Cause) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.String())
	}
	return out
}
