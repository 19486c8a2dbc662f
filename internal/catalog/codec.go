package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// ParseFile reads and parses a String Catalog file.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes String Catalog JSON.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if doc.SourceLanguage == "" {
		return nil, fmt.Errorf("missing sourceLanguage")
	}
	if doc.Strings == nil {
		doc.Strings = make(map[string]*Group)
	}
	for key, g := range doc.Strings {
		if g == nil {
			doc.Strings[key] = &Group{}
		}
	}
	return &doc, nil
}

// Encode serializes the document deterministically: object keys are sorted
// (encoding/json sorts map keys), indentation is two spaces and the output
// ends with a newline. HTML characters are not escaped so format strings
// like "<b>%@</b>" stay readable in diffs.
func Encode(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding catalog: %w", err)
	}
	return buf.Bytes(), nil
}

// marshalUnescaped is json.Marshal without HTML escaping. The encoder keeps
// a Marshaler's bytes as they are, so nested values must not escape either.
func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
