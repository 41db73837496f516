// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package csv

import (
	"bytes"
	stdcsv "encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanaidilp/form-gear-sub001/internal/export"
)

func TestExport(t *testing.T) {
	doc := &export.Document{
		Title: "fixture",
		Sections: []export.Section{
			{
				Label: "Main",
				Fields: []export.Field{
					{DataKey: "name", Label: "Name", Kind: "text", Answer: "Ana", State: "valid"},
					{DataKey: "age", Label: "Age", Kind: "number", Answer: "-4", State: "error", Messages: []string{"negative"}},
				},
			},
		},
	}

	out, err := (&Exporter{}).Export(doc)
	require.NoError(t, err)

	records, err := stdcsv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "dataKey", records[0][1])
	assert.Equal(t, []string{"Main", "name", "Name", "text", "Ana", "valid", "", ""}, records[1])
	assert.Equal(t, "negative", records[2][6])
}

func TestRegisteredInRegistry(t *testing.T) {
	e, err := export.Get("csv")
	require.NoError(t, err)
	assert.Equal(t, ".csv", e.FileExtension())
}
