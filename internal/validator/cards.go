package validator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/netrunnerdb/cardlint/internal/card"
	"github.com/netrunnerdb/cardlint/internal/report"
	"github.com/netrunnerdb/cardlint/internal/schema"
)

const cardsCollection = "cards"

func (v *Validator) indexComplete() bool {
	return v.index.Packs != nil && v.index.Factions != nil && v.index.Types != nil && v.index.Sides != nil
}

// validateCards checks every card of every listed pack, in pack order and
// then file order.
func (v *Validator) validateCards() error {
	if !v.indexComplete() {
		v.logger.Warn("Couldn't open packs, factions, types or sides correctly, skipping card validation...")
		return nil
	}

	sch := v.loadSchema(cardsCollection, "card_schema.json")
	if sch == nil {
		return nil
	}

	for _, p := range v.index.Packs.Items {
		v.logger.Info(fmt.Sprintf("Validating cards from %s...", p.Name))

		doc := v.load(cardsCollection, v.packFile(p.Code))
		if doc == nil {
			continue
		}
		elements, ok := doc.Elements()
		if !ok {
			v.Results.Record(report.Violation{
				Collection: cardsCollection,
				Message:    fmt.Sprintf("insides of pack file %s are not a list", doc.Path),
			})
			continue
		}
		values, _ := doc.Values()
		for i, raw := range elements {
			v.validateCard(raw, values[i], p.Code, sch)
		}
	}
	return nil
}

func (v *Validator) validateCard(raw json.RawMessage, value any, packCode string, sch *schema.Schema) {
	code, title := card.Describe(raw)
	v.logger.Debug(fmt.Sprintf("Validating card %s...", title))

	failure := sch.Check(value)
	c, decodeErr := card.DecodeCard(raw)

	switch {
	case failure != nil:
		v.Results.Record(report.Violation{
			Collection: cardsCollection,
			Subject:    fmt.Sprintf("pack code: '%s' card code: '%s' title: '%s'", packCode, code, title),
			Message:    "schema validation failed",
			Details:    causes(failure.Causes),
		})
	case decodeErr != nil:
		v.Results.Record(report.Violation{
			Collection: cardsCollection,
			Subject:    fmt.Sprintf("pack code: '%s' card code: '%s' title: '%s'", packCode, code, title),
			Message:    fmt.Sprintf("cannot decode card: %v", decodeErr),
		})
	default:
		if msg := checkReferences(&c, packCode, &v.index); msg != "" {
			v.Results.Record(report.Violation{Collection: cardsCollection, Subject: cardSubject(packCode, c), Message: msg})
		}
	}

	// A card that cannot be decoded has no typed text to inspect; the
	// violation above already covers it.
	if decodeErr != nil {
		return
	}
	for _, msg := range checkText(&c) {
		v.Results.Record(report.Violation{Collection: cardsCollection, Subject: cardSubject(packCode, c), Message: msg})
	}
	v.printings.add(&c)
}

func (v *Validator) validatePrintings() error {
	v.Results.RecordAll(v.printings.check())
	return nil
}

// findOrphanPackFiles warns about pack files that packs.json does not list.
func (v *Validator) findOrphanPackFiles() error {
	if v.index.Packs == nil {
		return nil
	}
	names, err := doublestar.Glob(os.DirFS(v.PackPath), "*.json", doublestar.WithFilesOnly())
	if err != nil {
		v.logger.Warn(fmt.Sprintf("Couldn't list %s: %v", v.PackPath, err))
		return nil
	}
	sort.Strings(names)
	for _, name := range names {
		if !slices.Contains(v.index.Packs.listed, strings.TrimSuffix(name, ".json")) {
			v.Results.Warn(report.Violation{
				Collection: packsCollection.name,
				Subject:    filepath.Join(v.PackPath, name),
				Message:    fmt.Sprintf("pack file is not listed in %s", packsCollection.file),
			})
		}
	}
	return nil
}
