// Package optionsource reads option collections from YAML, TOML or JSON files.
//
// A file is either a bare list of options (YAML and JSON only) or a document
// with an "options" list, optional "label", "hint" and "legend" strings and an
// optional "filtering_fields" list:
//
//	label = "Villes"
//	options = [
//	  { id = 1, label = "Paris" },
//	  { id = 2, label = "Lyon" },
//	]
package optionsource

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrNoOptions is returned when a document has no options list
var ErrNoOptions = errors.New("no options list")

// Source is a parsed options file
type Source struct {
	Name    string // file name without extension
	Label   string
	Hint    string
	Legend  string
	Options []interface{}

	// FilteringFields overrides the configured search fields when set
	FilteringFields []string
}

// Load reads a file, picking the format from its extension
func Load(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	src, err := Parse(data, strings.TrimPrefix(ext, "."))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	src.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return src, nil
}

// Parse decodes data in the given format (yaml, yml, toml or json)
func Parse(data []byte, format string) (*Source, error) {
	var doc interface{}
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case "toml":
		var table map[string]interface{}
		if err := toml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
		doc = table
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported options format %q", format)
	}

	return fromDocument(doc)
}

func fromDocument(doc interface{}) (*Source, error) {
	switch doc := doc.(type) {
	case []interface{}:
		return &Source{Options: doc}, nil

	case map[string]interface{}:
		raw, ok := doc["options"]
		if !ok {
			return nil, ErrNoOptions
		}
		opts, ok := raw.([]interface{})
		if !ok {
			return nil, fmt.Errorf("options must be a list, got %T", raw)
		}
		fields, err := stringList(doc, "filtering_fields")
		if err != nil {
			return nil, err
		}
		return &Source{
			Label:           stringField(doc, "label"),
			Hint:            stringField(doc, "hint"),
			Legend:          stringField(doc, "legend"),
			Options:         opts,
			FilteringFields: fields,
		}, nil
	}
	return nil, fmt.Errorf("%w: unexpected document of type %T", ErrNoOptions, doc)
}

func stringField(doc map[string]interface{}, key string) string {
	s, _ := doc[key].(string)
	return s
}

func stringList(doc map[string]interface{}, key string) ([]string, error) {
	raw, ok := doc[key]
	if !ok {
		return nil, nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s must be a list, got %T", key, raw)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s must hold strings, got %T", key, item)
		}
		out = append(out, s)
	}
	return out, nil
}
