package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-datengen/pkg/dataset"
	"github.com/goliatone/go-datengen/pkg/record"
)

var (
	errEmptyDocument     = errors.New("file is empty")
	errMultipleDocuments = errors.New("expected a single document")
)

// decode parses one data file as a single YAML mapping.
func decode(name string, data []byte) (record.Record, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, &dataset.ParseError{Name: name, Err: errEmptyDocument}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &dataset.ParseError{Name: name, Err: errEmptyDocument}
		}
		return nil, &dataset.ParseError{Name: name, Err: err}
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, &dataset.ParseError{Name: name, Err: err}
		}
		return nil, &dataset.ParseError{Name: name, Err: errMultipleDocuments}
	}

	resolveYAML11Bools(&doc)

	var raw any
	if err := doc.Decode(&raw); err != nil {
		return nil, &dataset.ParseError{Name: name, Err: err}
	}

	mapping, ok := record.Normalize(raw).(map[string]any)
	if !ok {
		return nil, &dataset.ParseError{Name: name, Err: fmt.Errorf("top-level value must be a mapping, got %T", raw)}
	}
	return record.Record(mapping), nil
}

// resolveYAML11Bools retags plain yes/no/on/off value scalars as booleans, the
// way YAML 1.1 data files are written. Quoted scalars and mapping keys stay
// strings.
func resolveYAML11Bools(node *yaml.Node) {
	switch node.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, child := range node.Content {
			resolveYAML11Bools(child)
		}
	case yaml.MappingNode:
		for idx := 1; idx < len(node.Content); idx += 2 {
			resolveYAML11Bools(node.Content[idx])
		}
	case yaml.ScalarNode:
		if node.Style != 0 || node.ShortTag() != "!!str" {
			return
		}
		if value, ok := record.YAMLBool(node.Value); ok {
			node.Tag = "!!bool"
			node.Value = fmt.Sprint(value)
		}
	}
}
