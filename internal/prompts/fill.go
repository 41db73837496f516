// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package prompts

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/ryanaidilp/form-gear-sub001/internal/engine"
	"github.com/ryanaidilp/form-gear-sub001/internal/template"
)

// FillSection prompts for every currently enabled input of one top-level
// section and applies each answer through the session. Prompting one field at
// a time lets answers enable or disable the fields that follow.
func FillSection(s *engine.Session, sectionIndex int) error {
	asked := make(map[string]struct{})
	for {
		ref := nextBlankInput(s, sectionIndex, asked)
		if ref == nil {
			return nil
		}
		asked[ref.DataKey] = struct{}{}
		answer, err := askField(ref)
		if err != nil {
			return err
		}
		s.ApplyAnswer(ref.DataKey, answer)

		if ref.ValidationState == engine.StateError {
			PrintIssues(ref.ValidationMessages, func(int) bool { return true })
		} else if ref.ValidationState == engine.StateWarning {
			PrintIssues(ref.ValidationMessages, func(int) bool { return false })
		}
	}
}

func nextBlankInput(s *engine.Session, sectionIndex int, asked map[string]struct{}) *engine.Reference {
	for _, ref := range s.Index().All() {
		if len(ref.Index) == 0 || ref.Index[0] != sectionIndex {
			continue
		}
		if !ref.Kind.IsInput() || !ref.Enable || ref.Answered() {
			continue
		}
		if _, done := asked[ref.DataKey]; done {
			continue
		}
		return ref
	}
	return nil
}

func askField(ref *engine.Reference) (any, error) {
	title := ref.Label
	if title == "" {
		title = ref.DataKey
	}

	switch ref.Kind {
	case template.KindSelect, template.KindRadio:
		return askChoice(title, ref)
	case template.KindCheckbox:
		return askMultiChoice(title, ref)
	case template.KindNumber:
		return askNumber(title, ref)
	case template.KindDate:
		return askDate(title, ref)
	default:
		return askText(title, ref)
	}
}

func askText(title string, ref *engine.Reference) (any, error) {
	var value string
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Description(ref.DataKey).
			Value(&value),
	)).WithTheme(Theme()).Run()
	return value, err
}

func askNumber(title string, ref *engine.Reference) (any, error) {
	var raw string
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Description(ref.DataKey).
			Validate(func(s string) error {
				if s == "" {
					return nil
				}
				if _, convErr := strconv.ParseFloat(s, 64); convErr != nil {
					return fmt.Errorf("%q is not a number", s)
				}
				return nil
			}).
			Value(&raw),
	)).WithTheme(Theme()).Run()
	if err != nil || raw == "" {
		return "", err
	}
	n, _ := strconv.ParseFloat(raw, 64)
	return n, nil
}

func askDate(title string, ref *engine.Reference) (any, error) {
	var raw string
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Description(ref.DataKey + " (YYYY-MM-DD)").
			Validate(func(s string) error {
				if s == "" {
					return nil
				}
				if _, convErr := time.Parse("2006-01-02", s); convErr != nil {
					return fmt.Errorf("%q is not a date (YYYY-MM-DD)", s)
				}
				return nil
			}).
			Value(&raw),
	)).WithTheme(Theme()).Run()
	return raw, err
}

func askChoice(title string, ref *engine.Reference) (any, error) {
	options := make([]huh.Option[string], 0, len(ref.Options))
	for _, opt := range ref.Options {
		options = append(options, huh.NewOption(opt.Label, opt.Value))
	}
	if len(options) == 0 {
		// A select with no options degrades to free text.
		return askText(title, ref)
	}

	var value string
	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(title).
			Description(ref.DataKey).
			Options(options...).
			Value(&value),
	)).WithTheme(Theme()).Run()
	return value, err
}

func askMultiChoice(title string, ref *engine.Reference) (any, error) {
	options := make([]huh.Option[string], 0, len(ref.Options))
	for _, opt := range ref.Options {
		options = append(options, huh.NewOption(opt.Label, opt.Value))
	}
	if len(options) == 0 {
		return askText(title, ref)
	}

	var values []string
	err := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title(title).
			Description(ref.DataKey).
			Options(options...).
			Value(&values),
	)).WithTheme(Theme()).Run()
	if err != nil {
		return nil, err
	}
	answer := make([]any, len(values))
	for i, v := range values {
		answer[i] = v
	}
	return answer, nil
}

// SectionLabel formats a section heading for the fill flow.
func SectionLabel(ref *engine.Reference, position, total int) string {
	label := ref.Label
	if label == "" {
		label = ref.DataKey
	}
	return fmt.Sprintf("%s (%d/%d)", label, position, total)
}
