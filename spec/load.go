package spec

import (
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v4"
)

// Load decodes a document from YAML text. JSON documents decode too, since
// YAML is a superset.
func Load(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("spec: decode document: %w", err)
	}
	return &doc, nil
}

// LoadReader decodes a document from r.
func LoadReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("spec: read document: %w", err)
	}
	return Load(data)
}

// LoadFile decodes a document from a file on disk.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("spec: read %s: %w", path, err)
	}
	doc, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Dump encodes a document back to YAML.
func Dump(doc *Document) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("spec: encode document: %w", err)
	}
	return data, nil
}
