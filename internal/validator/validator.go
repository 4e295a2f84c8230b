package validator

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/netrunnerdb/cardlint/internal/card"
	"github.com/netrunnerdb/cardlint/internal/document"
	"github.com/netrunnerdb/cardlint/internal/report"
	"github.com/netrunnerdb/cardlint/internal/schema"
)

// RotationPolicy decides what a rotation referencing an unknown cycle does
// to the run.
type RotationPolicy string

const (
	// RecordRotations records a violation and keeps validating.
	RecordRotations RotationPolicy = "record"
	// AbortOnRotation stops the whole run with a FatalError.
	AbortOnRotation RotationPolicy = "abort"
)

// ParseRotationPolicy converts a flag or config value.
func ParseRotationPolicy(s string) (RotationPolicy, error) {
	switch RotationPolicy(s) {
	case "", RecordRotations:
		return RecordRotations, nil
	case AbortOnRotation:
		return AbortOnRotation, nil
	}
	return "", fmt.Errorf("unknown rotation policy %q (expected record or abort)", s)
}

type Options struct {
	BasePath   string
	PackPath   string
	SchemaPath string

	// Legacy validates the older sets.json / set/ layout and also checks
	// that every file is in canonical form.
	Legacy        bool
	FixFormatting bool

	RotationPolicy RotationPolicy

	// ConsistentAttributes must agree across all printings of a title.
	// text and stripped_text are always checked; nil means
	// card.PrintingAttributes.
	ConsistentAttributes []string
}

// FatalError is a precondition failure that makes the repository unusable.
// It ends the run before the error tally is consulted.
type FatalError struct {
	Msg string
}

func (e *FatalError) Error() string {
	return e.Msg
}

func fatalf(format string, args ...any) *FatalError {
	return &FatalError{Msg: fmt.Sprintf(format, args...)}
}

// IsFatal reports whether err is (or wraps) a *FatalError.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}

type Validator struct {
	Options
	Results *report.Tally

	index     Index
	printings *printings
	schemas   map[string]*schema.Schema
	logger    *slog.Logger
}

func NewValidator(opts Options, results *report.Tally) *Validator {
	if opts.PackPath == "" {
		dir := "pack"
		if opts.Legacy {
			dir = "set"
		}
		opts.PackPath = filepath.Join(opts.BasePath, dir)
	}
	if opts.SchemaPath == "" {
		opts.SchemaPath = filepath.Join(opts.BasePath, "schema")
	}
	if opts.RotationPolicy == "" {
		opts.RotationPolicy = RecordRotations
	}
	if opts.ConsistentAttributes == nil {
		opts.ConsistentAttributes = card.PrintingAttributes
	}
	if results == nil {
		results = report.NewTally(nil)
	}
	return &Validator{
		Options:   opts,
		Results:   results,
		printings: newPrintings(opts.ConsistentAttributes),
		schemas:   make(map[string]*schema.Schema),
		logger:    slog.Default(),
	}
}

// Validate runs the whole pass. Content problems are recorded in Results; a
// returned error is always a *FatalError.
func (v *Validator) Validate() error {
	if err := v.checkPreconditions(); err != nil {
		return err
	}
	if v.Legacy {
		return run(v.legacySteps())
	}
	return run(v.steps())
}

// Index returns the lookup tables built by the last Validate call.
func (v *Validator) Index() *Index {
	return &v.index
}

func (v *Validator) checkPreconditions() error {
	for _, dir := range []string{v.BasePath, v.SchemaPath, v.PackPath} {
		if err := checkDirAccess(dir); err != nil {
			return err
		}
	}
	required := requiredFiles
	if v.Legacy {
		required = legacyRequiredFiles
	}
	for _, name := range required {
		if err := checkFileAccess(filepath.Join(v.BasePath, name)); err != nil {
			return err
		}
	}
	return nil
}

var requiredFiles = []string{
	"cycles.json", "packs.json", "factions.json", "types.json", "sides.json",
	"rotations.json", "mwl.json", "prebuilts.json",
}

var legacyRequiredFiles = []string{"sets.json", "mwl.json"}

func checkDirAccess(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return fatalf("%s is not a valid path", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return fatalf("%s is not a readable directory", path)
	}
	return f.Close()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func checkFileAccess(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fatalf("%s does not exist", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return fatalf("%s is not a readable file", path)
	}
	return f.Close()
}

// load reads a document, recording a violation when it cannot be read or
// parsed. In legacy mode the file's formatting is checked as well.
func (v *Validator) load(collection, path string) *document.Document {
	doc, err := document.Load(path)
	if err != nil {
		v.recordLoadError(collection, path, err)
		return nil
	}
	if v.Legacy {
		v.checkFormatting(doc)
	}
	return doc
}

func (v *Validator) recordLoadError(collection, path string, err error) {
	var invalid *schema.InvalidSchemaError
	if document.IsParseError(err) || errors.As(err, &invalid) {
		v.Results.Record(report.Violation{Collection: collection, Message: err.Error()})
		return
	}
	v.Results.Record(report.Violation{Collection: collection, Message: fmt.Sprintf("cannot read %s: %v", path, err)})
}

// loadSchema loads and self-checks a schema from the schema directory. The
// result, including failure, is cached for the rest of the pass.
func (v *Validator) loadSchema(collection, name string) *schema.Schema {
	if s, ok := v.schemas[name]; ok {
		return s
	}
	v.schemas[name] = nil

	path := filepath.Join(v.SchemaPath, name)
	var (
		s   *schema.Schema
		err error
	)
	if v.Legacy {
		doc := v.load(collection, path)
		if doc == nil {
			return nil
		}
		s, err = schema.FromDocument(doc)
	} else {
		s, err = schema.Load(path)
	}
	if err != nil {
		v.recordLoadError(collection, path, err)
		return nil
	}
	v.schemas[name] = s
	return s
}

func (v *Validator) checkFormatting(doc *document.Document) {
	v.logger.Info(fmt.Sprintf("%s: Checking JSON formatting...", doc.Path))
	ok, err := doc.IsCanonical()
	if err != nil {
		v.Results.Record(report.Violation{Collection: "formatting", Message: err.Error()})
		return
	}
	if ok {
		return
	}
	v.Results.RecordFormatting(doc.Path)
	if !v.FixFormatting {
		return
	}
	v.logger.Warn(fmt.Sprintf("%s: Fixing JSON formatting...", doc.Path))
	if err := doc.WriteCanonical(); err != nil {
		v.logger.Error(err.Error())
	}
}

func subject(code, name string) string {
	return fmt.Sprintf("code: '%s' name: '%s'", code, name)
}

func cardSubject(packCode string, c card.Card) string {
	return fmt.Sprintf("pack code: '%s' card code: '%s' title: '%s'", packCode, c.Code, c.Title)
}
