// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package template

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser decodes a form template from an io.Reader.
type Parser struct {
	parse func(io.Reader) (*Template, error)
}

var (
	// JSON parses form templates from JSON.
	JSON = Parser{parseJSON}
	// YAML parses form templates from YAML.
	YAML = Parser{parseYAML}
)

// Parse decodes a template from r and validates its structure.
func (p Parser) Parse(r io.Reader) (*Template, error) {
	t, err := p.parse(r)
	if err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// ParseFile decodes a template file, picking the parser from the extension.
// Unknown extensions fall back to JSON.
func ParseFile(path string) (*Template, error) {
	f, err := os.Open(path) //nolint:gosec // path is from config
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML.Parse(f)
	default:
		return JSON.Parse(f)
	}
}

func parseJSON(r io.Reader) (*Template, error) {
	if r == nil {
		return nil, errors.New("nil reader")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var t Template
	if err = json.Unmarshal(data, &t); err != nil { //nolint:gocritic
		return nil, err
	}
	return &t, nil
}

func parseYAML(r io.Reader) (*Template, error) {
	if r == nil {
		return nil, errors.New("nil reader")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var t Template
	if err = yaml.Unmarshal(data, &t); err != nil { //nolint:gocritic
		return nil, err
	}
	return &t, nil
}
