package validator

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/netrunnerdb/cardlint/internal/card"
	"github.com/netrunnerdb/cardlint/internal/report"
)

const translationsDir = "translations"

// translatedCollections are the index documents every locale carries.
var translatedCollections = []string{"cycles", "factions", "packs", "sides", "types"}

// validateRotations checks that every rotated cycle exists. What a bad
// reference does depends on the rotation policy.
func (v *Validator) validateRotations() error {
	rotations, _ := loadCollection(v, rotationsCollection, func(r card.Rotation) string { return r.Code })
	if rotations == nil {
		return nil
	}
	if v.index.Cycles == nil {
		v.logger.Warn("Couldn't open cycles file correctly, skipping rotation cycle checks...")
		return nil
	}

	for _, r := range rotations.Items {
		for _, cycle := range r.Rotated {
			if v.index.Cycles.Has(cycle) {
				continue
			}
			msg := fmt.Sprintf("Rotation %s has bad cycle %s", r.Name, cycle)
			if v.RotationPolicy == AbortOnRotation {
				return fatalf("%s", msg)
			}
			v.Results.Record(report.Violation{
				Collection: rotationsCollection.name,
				Subject:    subject(r.Code, r.Name),
				Message:    msg,
			})
		}
	}
	return nil
}

// validateTranslations checks that every locale's documents are well formed.
// Their contents are not compared with the main catalog.
func (v *Validator) validateTranslations() error {
	root := filepath.Join(v.BasePath, translationsDir)
	if err := checkDirAccess(root); err != nil {
		v.logger.Info(fmt.Sprintf("No %s directory, skipping translation validation", translationsDir))
		return nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		v.Results.Record(report.Violation{Collection: translationsDir, Message: fmt.Sprintf("cannot list %s: %v", root, err)})
		return nil
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		v.validateLocale(e.Name(), filepath.Join(root, e.Name()))
	}
	return nil
}

func (v *Validator) validateLocale(locale, dir string) {
	v.logger.Info(fmt.Sprintf("Loading %s translations...", locale))
	for _, name := range translatedCollections {
		v.load(translationsDir, filepath.Join(dir, fmt.Sprintf("%s.%s.json", name, locale)))
	}

	packDir := filepath.Join(dir, "pack")
	if checkDirAccess(packDir) != nil {
		v.logger.Warn(fmt.Sprintf("%s has no pack directory", dir))
		return
	}
	names, err := doublestar.Glob(os.DirFS(packDir), "*", doublestar.WithFilesOnly())
	if err != nil {
		v.Results.Record(report.Violation{Collection: translationsDir, Message: fmt.Sprintf("cannot list %s: %v", packDir, err)})
		return
	}
	sort.Strings(names)
	for _, name := range names {
		v.logger.Debug(fmt.Sprintf("Loading %s...", name))
		v.load(translationsDir, filepath.Join(packDir, name))
	}
}

func (v *Validator) validatePrebuilts() error {
	v.logger.Info("Loading prebuilts...")
	v.load("prebuilts", filepath.Join(v.BasePath, "prebuilts.json"))
	return nil
}

func (v *Validator) validateMWL() error {
	v.logger.Info("Loading MWL...")
	v.load("mwl", filepath.Join(v.BasePath, "mwl.json"))
	return nil
}
