package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads crawl rows from a JSON or YAML file. Both a bare list of rows
// and an object with a "rows" list are accepted. The format follows the
// file extension; anything other than .yaml or .yml is read as JSON.
func Load(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	return Decode(data, formatOf(path))
}

// Format is the encoding of a results file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses rows from data.
func Decode(data []byte, format Format) ([]map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var doc any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml results: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse json results: %w", err)
		}
	}

	if obj, ok := doc.(map[string]any); ok {
		doc = obj["rows"]
		if doc == nil {
			return nil, fmt.Errorf("results object has no rows list")
		}
	}
	list, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("results must be a list of rows, got %T", doc)
	}

	rows := make([]map[string]any, 0, len(list))
	for i, item := range list {
		row, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("row %d is %T, want an object", i+1, item)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
