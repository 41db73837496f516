// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package export

import (
	"fmt"
	"strings"

	"github.com/ryanaidilp/form-gear-sub001/internal/engine"
	"github.com/ryanaidilp/form-gear-sub001/internal/template"
)

// Field is one renderable row of the export document.
type Field struct {
	DataKey  string
	Label    string
	Kind     string
	Answer   string
	State    string
	Messages []string
	Remark   string
}

// Section groups the fields of one enabled top-level section.
type Section struct {
	DataKey string
	Label   string
	Fields  []Field
}

// Document is the format-independent view every exporter renders from.
type Document struct {
	Title    string
	Version  string
	Summary  engine.Summary
	Sections []Section
}

// Prepare flattens a session into a Document. Disabled fields and disabled
// sections are left out entirely; exports show the form the respondent saw.
func Prepare(s *engine.Session) *Document {
	doc := &Document{
		Title:   s.Template().Title,
		Version: s.Template().Version,
		Summary: s.Summarize(),
	}

	disabled := s.Enable().DisabledSectionIndices()
	bySection := make(map[int]*Section)
	var order []int

	for _, ref := range s.Index().All() {
		if len(ref.Index) == 0 {
			continue
		}
		if _, gone := disabled[ref.Index[0]]; gone {
			continue
		}
		if ref.Kind == template.KindSection {
			bySection[ref.Index[0]] = &Section{DataKey: ref.DataKey, Label: labelOf(ref)}
			order = append(order, ref.Index[0])
			continue
		}
		if !ref.Enable || ref.Kind == template.KindNested {
			continue
		}
		sec := bySection[ref.Index[0]]
		if sec == nil {
			continue
		}
		sec.Fields = append(sec.Fields, Field{
			DataKey:  ref.DataKey,
			Label:    labelOf(ref),
			Kind:     string(ref.Kind),
			Answer:   formatAnswer(ref.Answer),
			State:    stateName(ref.ValidationState),
			Messages: ref.ValidationMessages,
			Remark:   ref.Remark,
		})
	}

	for _, si := range order {
		doc.Sections = append(doc.Sections, *bySection[si])
	}
	return doc
}

func labelOf(ref *engine.Reference) string {
	if ref.Label != "" {
		return ref.Label
	}
	return ref.DataKey
}

func formatAnswer(answer any) string {
	switch v := answer.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = formatAnswer(item)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

func stateName(state engine.ValidationState) string {
	switch state {
	case engine.StateError:
		return "error"
	case engine.StateWarning:
		return "warning"
	default:
		return "valid"
	}
}
