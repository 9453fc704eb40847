package schema

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// document is the on-disk layout of a table definition file.
type document struct {
	Tables []*Table `yaml:"tables"`
}

// LoadYAML decodes table definitions from r. The document holds a top-level
// "tables" sequence; multiple YAML documents in one stream are concatenated.
func LoadYAML(r io.Reader) ([]*Table, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var tables []*Table
	for {
		var doc document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode table definitions: %w", err)
		}
		tables = append(tables, doc.Tables...)
	}

	for i, t := range tables {
		if t == nil || t.Name == "" {
			return nil, fmt.Errorf("table definition #%d has no name", i+1)
		}
	}
	return tables, nil
}

// LoadFile reads table definitions from the YAML file at path.
func LoadFile(path string) ([]*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tables, err := LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tables, nil
}
