// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package csv

import (
	"bytes"
	stdcsv "encoding/csv"
	"strings"

	"github.com/ryanaidilp/form-gear-sub001/internal/export"
)

func init() {
	// Auto-register on import
	export.Register(&Exporter{})
}

// Exporter renders form sessions to a flat CSV of fields.
type Exporter struct{}

// Name returns the exporter identifier.
func (e *Exporter) Name() string {
	return "csv"
}

// FileExtension returns the file extension for CSV files.
func (e *Exporter) FileExtension() string {
	return ".csv"
}

// Export renders one row per field with its answer and validation state.
func (e *Exporter) Export(doc *export.Document) ([]byte, error) {
	var buf bytes.Buffer
	w := stdcsv.NewWriter(&buf)

	if err := w.Write([]string{"section", "dataKey", "label", "type", "answer", "state", "messages", "remark"}); err != nil {
		return nil, err
	}
	for _, sec := range doc.Sections {
		for _, f := range sec.Fields {
			record := []string{
				sec.Label,
				f.DataKey,
				f.Label,
				f.Kind,
				f.Answer,
				f.State,
				strings.Join(f.Messages, "; "),
				f.Remark,
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
