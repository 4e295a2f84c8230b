package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Indent is the indentation used by the canonical form.
const Indent = "    "

// Canonical encodes value with sorted object keys, four space indentation
// and a trailing newline. Non-ASCII text is written verbatim.
func Canonical(value any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(value); err != nil {
		return nil, fmt.Errorf("encode canonical form: %w", err)
	}
	return buf.Bytes(), nil
}

// IsCanonical reports whether the on-disk bytes already match the canonical
// encoding of the decoded value.
func (d *Document) IsCanonical() (bool, error) {
	formatted, err := Canonical(d.Value)
	if err != nil {
		return false, err
	}
	return bytes.Equal(formatted, d.Raw), nil
}

// WriteCanonical rewrites the file in canonical form and updates Raw.
func (d *Document) WriteCanonical() error {
	formatted, err := Canonical(d.Value)
	if err != nil {
		return err
	}
	if len(formatted) == 0 {
		return nil
	}
	info, err := os.Stat(d.Path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(d.Path, formatted, info.Mode().Perm()); err != nil {
		return fmt.Errorf("cannot open %s to write: %w", d.Path, err)
	}
	d.Raw = formatted
	return nil
}
