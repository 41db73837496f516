// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package engine

import (
	"github.com/ryanaidilp/form-gear-sub001/internal/template"
)

// Summary aggregates form progress. Disabled fields and fields inside
// disabled sections are invisible to every counter: a hidden question is
// neither answered nor blank.
type Summary struct {
	Answered int `json:"answered" yaml:"answered"`
	Blank    int `json:"blank" yaml:"blank"`
	Error    int `json:"error" yaml:"error"`
	Warning  int `json:"warning" yaml:"warning"`
	Remarked int `json:"remarked" yaml:"remarked"`
	// Clean counts answered fields carrying no error and no warning.
	Clean int `json:"clean" yaml:"clean"`

	Sections []SectionSummary `json:"sections" yaml:"sections"`
}

// SectionSummary is the per-section breakdown of the same counters.
type SectionSummary struct {
	DataKey  string `json:"dataKey" yaml:"dataKey"`
	Label    string `json:"label" yaml:"label"`
	Answered int    `json:"answered" yaml:"answered"`
	Blank    int    `json:"blank" yaml:"blank"`
	Error    int    `json:"error" yaml:"error"`
	Warning  int    `json:"warning" yaml:"warning"`
	Remarked int    `json:"remarked" yaml:"remarked"`
}

// Summarize counts the current answer and validation state of every enabled
// input. Sections, variables and repeating-group containers do not count as
// inputs; their children do.
func (s *Session) Summarize() Summary {
	disabled := s.enable.DisabledSectionIndices()
	sum := Summary{}
	bySection := map[int]*SectionSummary{}
	var order []int

	for _, ref := range s.idx.All() {
		if ref.Kind == template.KindSection && len(ref.Index) > 0 {
			if _, gone := disabled[ref.Index[0]]; gone {
				continue
			}
			if _, ok := bySection[ref.Index[0]]; !ok {
				bySection[ref.Index[0]] = &SectionSummary{DataKey: ref.DataKey, Label: ref.Label}
				order = append(order, ref.Index[0])
			}
			continue
		}
		if !ref.Kind.IsInput() || !ref.Enable || len(ref.Index) == 0 {
			continue
		}
		if _, gone := disabled[ref.Index[0]]; gone {
			continue
		}
		sec := bySection[ref.Index[0]]
		if sec == nil {
			sec = &SectionSummary{}
			bySection[ref.Index[0]] = sec
			order = append(order, ref.Index[0])
		}

		if ref.Answered() {
			sum.Answered++
			sec.Answered++
			if ref.ValidationState == StateValid {
				sum.Clean++
			}
		} else {
			sum.Blank++
			sec.Blank++
		}
		switch ref.ValidationState {
		case StateError:
			sum.Error++
			sec.Error++
		case StateWarning:
			sum.Warning++
			sec.Warning++
		}
		if ref.Remark != "" {
			sum.Remarked++
			sec.Remarked++
		}
	}

	for _, si := range order {
		sum.Sections = append(sum.Sections, *bySection[si])
	}
	return sum
}
