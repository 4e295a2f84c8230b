package validator

import (
	"fmt"

	"github.com/netrunnerdb/cardlint/internal/card"
	"github.com/netrunnerdb/cardlint/internal/report"
)

// buildSets loads the legacy sets.json index. Card validation only runs when
// every set passed its schema.
func (v *Validator) buildSets() error {
	sets, failed := loadCollection(v, setsCollection, func(s card.Set) string { return s.Code })
	if sets == nil || failed > 0 {
		v.logger.Warn("Couldn't open sets file correctly, skipping card validation...")
		return nil
	}
	for _, s := range sets.Items {
		if err := checkFileAccess(v.packFile(s.Code)); err != nil {
			return err
		}
	}
	v.index.Sets = sets
	return nil
}

// validateLegacyCards checks each set file's cards against the card schema
// and the set they appear in.
func (v *Validator) validateLegacyCards() error {
	if v.index.Sets == nil {
		return nil
	}
	sch := v.loadSchema(cardsCollection, "card_schema.json")
	if sch == nil {
		return nil
	}

	for _, s := range v.index.Sets.Items {
		v.logger.Info(fmt.Sprintf("Validating cards from %s...", s.Name))

		doc := v.load(cardsCollection, v.packFile(s.Code))
		if doc == nil {
			continue
		}
		elements, ok := doc.Elements()
		if !ok {
			v.Results.Record(report.Violation{
				Collection: cardsCollection,
				Message:    fmt.Sprintf("insides of set file %s are not a list", doc.Path),
			})
			continue
		}
		values, _ := doc.Values()
		for i, raw := range elements {
			code, title := card.Describe(raw)
			v.logger.Debug(fmt.Sprintf("Validating card %s...", title))
			subj := fmt.Sprintf("set code: '%s' card code: '%s' title: '%s'", s.Code, code, title)

			if failure := sch.Check(values[i]); failure != nil {
				v.Results.Record(report.Violation{
					Collection: cardsCollection,
					Subject:    subj,
					Message:    "schema validation failed",
					Details:    causes(failure.Causes),
				})
				continue
			}
			c, err := card.DecodeCard(raw)
			if err != nil {
				v.Results.Record(report.Violation{Collection: cardsCollection, Subject: subj, Message: fmt.Sprintf("cannot decode card: %v", err)})
				continue
			}
			if c.PackCode != s.Code {
				v.Results.Record(report.Violation{
					Collection: cardsCollection,
					Subject:    subj,
					Message:    fmt.Sprintf("Pack code '%s' of the card '%s' doesn't match the set code '%s' of the file it appears in.", c.PackCode, c.Code, s.Code),
				})
			}
		}
	}
	return nil
}
