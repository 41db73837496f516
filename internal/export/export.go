// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

// Package export renders a live form session to output formats.
package export

import (
	"fmt"
)

// Exporter defines the interface all output formats must implement.
type Exporter interface {
	// Name returns the exporter's identifier (e.g., "markdown", "csv").
	Name() string

	// Export renders the prepared form document.
	Export(doc *Document) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".md").
	FileExtension() string
}

var exporters = make(map[string]Exporter)

// Register adds an exporter to the registry.
func Register(e Exporter) {
	exporters[e.Name()] = e
}

// Get retrieves an exporter by name.
func Get(name string) (Exporter, error) {
	e, ok := exporters[name]
	if !ok {
		return nil, fmt.Errorf("unknown exporter: %s", name)
	}
	return e, nil
}

// Available returns all registered exporter names.
func Available() []string {
	names := make([]string, 0, len(exporters))
	for name := range exporters {
		names = append(names, name)
	}
	return names
}
