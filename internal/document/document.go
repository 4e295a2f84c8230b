package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Document is a JSON file read from disk together with its decoded value.
// Numbers are kept as json.Number so that re-encoding preserves their text.
type Document struct {
	Path  string
	Raw   []byte
	Value any
}

// ParseError reports a file that could be read but is not valid JSON.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: file is not valid JSON: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err is (or wraps) a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// Load reads and decodes the JSON file at path.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, raw)
}

// Parse decodes raw as JSON. path is only used for error messages.
func Parse(path string, raw []byte) (*Document, error) {
	value, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &Document{Path: path, Raw: raw, Value: value}, nil
}

// Elements splits a top-level array into its raw elements. ok is false when
// the document is not an array.
func (d *Document) Elements() (elements []json.RawMessage, ok bool) {
	if _, isArray := d.Value.([]any); !isArray {
		return nil, false
	}
	if err := json.Unmarshal(d.Raw, &elements); err != nil {
		return nil, false
	}
	return elements, true
}

// Values returns the decoded elements of a top-level array.
func (d *Document) Values() ([]any, bool) {
	values, ok := d.Value.([]any)
	return values, ok
}
