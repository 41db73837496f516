// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package lint

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

//go:embed formgear.schema.json
var metaSchemaJSON []byte

var (
	metaOnce     sync.Once
	metaResolved *jsonschema.Resolved
	metaErr      error
)

func metaSchema() (*jsonschema.Resolved, error) {
	metaOnce.Do(func() {
		var s jsonschema.Schema
		if metaErr = json.Unmarshal(metaSchemaJSON, &s); metaErr != nil {
			return
		}
		metaResolved, metaErr = s.Resolve(nil)
	})
	return metaResolved, metaErr
}

// CheckSchema validates a raw JSON template document against the template
// metaschema. Each violation becomes one error-level issue.
func CheckSchema(data []byte) ([]Issue, error) {
	resolved, err := metaSchema()
	if err != nil {
		return nil, fmt.Errorf("template metaschema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return []Issue{{Level: LevelError, Message: fmt.Sprintf("invalid JSON: %v", err)}}, nil
	}
	if err := resolved.Validate(doc); err != nil {
		return []Issue{{Level: LevelError, Message: err.Error()}}, nil
	}
	return nil, nil
}
