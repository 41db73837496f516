// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package markdown

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/ryanaidilp/form-gear-sub001/internal/export"
)

func init() {
	// Auto-register on import
	export.Register(&Exporter{})
}

//go:embed markdown.go.tmpl
var tmplFS embed.FS

var funcMap = template.FuncMap{
	"joinMessages": joinMessages,
}

var tmpl = template.Must(template.New("markdown.go.tmpl").Funcs(funcMap).ParseFS(tmplFS, "markdown.go.tmpl"))

// Exporter renders form sessions to markdown documentation.
type Exporter struct{}

// Name returns the exporter identifier.
func (e *Exporter) Name() string {
	return "markdown"
}

// FileExtension returns the file extension for markdown files.
func (e *Exporter) FileExtension() string {
	return ".md"
}

// Export renders the prepared document as markdown.
func (e *Exporter) Export(doc *export.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "markdown.go.tmpl", doc); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

func joinMessages(messages []string) string {
	return strings.Join(messages, "; ")
}
