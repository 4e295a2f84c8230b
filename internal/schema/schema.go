package schema

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/netrunnerdb/cardlint/internal/document"
)

var printer = message.NewPrinter(language.English)

// Schema is a compiled JSON Schema document. Schemas without a $schema
// keyword are treated as Draft 4.
type Schema struct {
	Path   string
	schema *jsonschema.Schema
}

// InvalidSchemaError reports a schema document that is not itself a valid
// Draft 4 schema.
type InvalidSchemaError struct {
	Path string
	Err  error
}

func (e *InvalidSchemaError) Error() string {
	return fmt.Sprintf("%s: schema file is not valid Draft 4 JSON schema: %v", e.Path, e.Err)
}

func (e *InvalidSchemaError) Unwrap() error {
	return e.Err
}

// Load reads the schema at path and checks it against its meta-schema.
// A read or parse failure is returned as is; a schema that fails the
// meta-schema check is returned as *InvalidSchemaError.
func Load(path string) (*Schema, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	return FromDocument(doc)
}

// FromDocument compiles an already loaded schema document.
func FromDocument(doc *document.Document) (*Schema, error) {
	url := resourceURL(doc.Path)

	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft4)
	if err := c.AddResource(url, doc.Value); err != nil {
		return nil, &InvalidSchemaError{Path: doc.Path, Err: err}
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, &InvalidSchemaError{Path: doc.Path, Err: err}
	}
	return &Schema{Path: doc.Path, schema: sch}, nil
}

func resourceURL(path string) string {
	return fmt.Sprintf("mem://schema/%s", filepath.ToSlash(filepath.Base(path)))
}

// Cause is a single leaf failure of a schema check.
type Cause struct {
	Location string
	Message  string
}

func (c Cause) String() string {
	return fmt.Sprintf("at '%s': %s", c.Location, c.Message)
}

// Failure is the structured result of a failed schema check.
type Failure struct {
	Causes []Cause
}

func (f *Failure) Error() string {
	parts := make([]string, 0, len(f.Causes))
	for _, c := range f.Causes {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, "; ")
}

// Check validates value against the schema. It returns nil when value
// conforms.
func (s *Schema) Check(value any) *Failure {
	err := s.schema.Validate(value)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &Failure{Causes: []Cause{{Location: "/", Message: err.Error()}}}
	}
	var failure Failure
	for _, leaf := range flatten(ve) {
		failure.Causes = append(failure.Causes, Cause{
			Location: "/" + strings.Join(leaf.InstanceLocation, "/"),
			Message:  leaf.ErrorKind.LocalizedString(printer),
		})
	}
	return &failure
}

// flatten collects the leaf errors of a validation error tree.
func flatten(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var flat []*jsonschema.ValidationError
	for _, cause := range ve.Causes {
		flat = append(flat, flatten(cause)...)
	}
	return flat
}
