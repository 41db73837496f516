// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

// Package response handles the saved answer payload of a form session.
package response

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ryanaidilp/form-gear-sub001/internal/engine"
)

// Answer is one stored field answer, keyed by canonical dataKey.
type Answer struct {
	DataKey string `json:"dataKey"`
	Answer  any    `json:"answer"`
	Remark  string `json:"remark,omitempty"`
}

// Response is the persisted state of one form session. Principals duplicate
// selected answers at the top level so downstream systems can route the
// payload without replaying it.
type Response struct {
	ID        string    `json:"id"`
	Template  string    `json:"template"`
	Version   string    `json:"version,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`

	Answers    []Answer       `json:"answers"`
	Principals map[string]any `json:"principals,omitempty"`
}

// New creates an empty response for the given template identity.
func New(title, version string) *Response {
	return &Response{
		ID:        uuid.NewString(),
		Template:  title,
		Version:   version,
		UpdatedAt: time.Now().UTC(),
	}
}

// Load reads a response payload from path.
func Load(path string) (*Response, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is from config
	if err != nil {
		return nil, err
	}
	var r Response
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("invalid response payload: %w", err)
	}
	return &r, nil
}

// Save writes the response payload to path.
func (r *Response) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is from config
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Extract snapshots the session's answered fields, remarks and principals
// into the response. Existing answers are replaced wholesale.
func (r *Response) Extract(s *engine.Session) {
	r.Answers = nil
	for _, ref := range s.Index().All() {
		if ref.Answer == nil && ref.Remark == "" {
			continue
		}
		r.Answers = append(r.Answers, Answer{
			DataKey: ref.DataKey,
			Answer:  ref.Answer,
			Remark:  ref.Remark,
		})
	}

	principals := make(map[string]any)
	for _, key := range s.Template().Principals {
		if ref := s.Index().GetComponent(key); ref != nil && ref.Answer != nil {
			principals[key] = ref.Answer
		}
	}
	if len(principals) > 0 {
		r.Principals = principals
	} else {
		r.Principals = nil
	}
	r.UpdatedAt = time.Now().UTC()
}

// Seed replays the stored answers into a fresh session in payload order.
// Replaying through the session keeps dependent state consistent and lets
// repeating-group rows materialize before their row answers arrive. Answers
// for keys the template no longer has are skipped.
func (r *Response) Seed(s *engine.Session) {
	for _, a := range r.Answers {
		if a.Answer != nil {
			s.ApplyAnswer(a.DataKey, a.Answer)
		}
		if a.Remark != "" {
			s.SetRemark(a.DataKey, a.Remark)
		}
	}
}
