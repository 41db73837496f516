// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package engine

import (
	"github.com/ryanaidilp/form-gear-sub001/internal/template"
)

// RefreshSourceOptionDependents rebuilds the option list of every component
// sourcing its options from changedKey. Answers are preserved; a selection
// that no longer appears in the options is the validation layer's concern,
// not silently dropped data.
func (s *Session) RefreshSourceOptionDependents(changedKey string) []string {
	deps := s.maps.SourceOptionDependents(changedKey)
	for _, depKey := range deps {
		if ref := s.idx.GetComponent(depKey); ref != nil {
			s.refreshOptions(ref)
		}
	}
	return deps
}

// refreshOptions derives a component's options from its source answer. The
// source answer may be a plain string list or a list of label/value objects;
// anything else clears the options.
func (s *Session) refreshOptions(ref *Reference) {
	if ref.SourceOption == "" {
		return
	}
	answer := s.idx.GetValue(ref.SourceOption, ref.DataKey)
	ref.Options = optionsFromAnswer(answer)
}

func optionsFromAnswer(answer any) []template.Option {
	items, ok := answer.([]any)
	if !ok {
		return nil
	}
	var opts []template.Option
	for _, item := range items {
		switch v := item.(type) {
		case string:
			if v != "" {
				opts = append(opts, template.Option{Label: v, Value: v})
			}
		case map[string]any:
			opt := template.Option{}
			if label, ok := v["label"].(string); ok {
				opt.Label = label
			}
			if value, ok := v["value"].(string); ok {
				opt.Value = value
			}
			if opt.Value == "" {
				opt.Value = opt.Label
			}
			if opt.Label == "" {
				opt.Label = opt.Value
			}
			if opt.Value != "" {
				opts = append(opts, opt)
			}
		}
	}
	return opts
}
