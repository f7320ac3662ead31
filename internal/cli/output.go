package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"multiselect/internal/domain"
	"multiselect/internal/ui"
)

// selections is the document printed when the picker exits
type selections struct {
	Selections []selection `json:"selections" yaml:"selections" toml:"selections"`
}

type selection struct {
	Name     string        `json:"name" yaml:"name" toml:"name"`
	Selected []interface{} `json:"selected" yaml:"selected" toml:"selected"`
}

func newSelections(results []ui.Result) selections {
	doc := selections{Selections: make([]selection, len(results))}
	for i, r := range results {
		doc.Selections[i] = selection{Name: r.Name, Selected: domain.IDValues(r.Selected)}
	}
	return doc
}

// writeResults prints results in format; empty means json
func writeResults(w io.Writer, format string, results []ui.Result) error {
	doc := newSelections(results)

	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()

	case "toml":
		return toml.NewEncoder(w).Encode(doc)
	}
	return fmt.Errorf("unknown output format %q", format)
}
