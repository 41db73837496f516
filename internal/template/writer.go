// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package template

import (
	"encoding/json"
	"os"

	"gopkg.in/yaml.v3"
)

// Writer encodes a form template to a file.
type Writer struct {
	write     func(path string, v any) error
	extension string
}

var (
	// JSONWriter writes form templates as JSON.
	JSONWriter = Writer{writeJSON, ".json"}
	// YAMLWriter writes form templates as YAML.
	YAMLWriter = Writer{writeYaml, ".yaml"}
)

// Write encodes the template to path. The caller owns the naming; Extension
// tells it the writer's canonical suffix.
func (wr Writer) Write(t *Template, path string) error {
	return wr.write(path, t)
}

// Extension returns the writer's canonical file suffix.
func (wr Writer) Extension() string { return wr.extension }

func writeJSON(path string, v any) error {
	f, err := os.Create(path) //nolint:gosec // path is from config
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYaml(path string, v any) error {
	f, err := os.Create(path) //nolint:gosec // path is from config
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(v)
}
