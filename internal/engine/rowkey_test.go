// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowIndex(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		level int
		want  int
	}{
		{"plain key has no row", "Q1", 0, 0},
		{"suffix form", "member@2", 0, 2},
		{"path form", "household#2#member", 0, 2},
		{"mixed nesting innermost", "nested#1#field@3#subfield@7", 0, 7},
		{"mixed nesting one up", "nested#1#field@3#subfield@7", 1, 3},
		{"mixed nesting two up", "nested#1#field@3#subfield@7", 2, 1},
		{"level past the chain", "nested#1#field@3#subfield@7", 3, 0},
		{"negative level", "member@2", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RowIndex(tt.key, tt.level))
		})
	}
}

func TestResolveDataKey(t *testing.T) {
	const ctx = "nested#1#field@3#subfield@7"

	tests := []struct {
		name     string
		template string
		context  string
		want     string
	}{
		{"no marker passes through", "Q1", ctx, "Q1"},
		{"row zero", "Q1@$ROW$", ctx, "Q1@7"},
		{"one level up", "Q1@$ROW1$", ctx, "Q1@3"},
		{"two levels up", "Q1@$ROW2$", ctx, "Q1@1"},
		{"not enough rows returns unchanged", "Q1@$ROW3$", ctx, "Q1@$ROW3$"},
		{"plain context returns unchanged", "Q1@$ROW$", "Q2", "Q1@$ROW$"},
		{"path-form context", "Q1@$ROW$", "household#2#member", "Q1@2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveDataKey(tt.template, tt.context))
		})
	}
}

func TestBaseKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"Q1", "Q1"},
		{"Q1@3", "Q1"},
		{"Q1@$ROW$", "Q1"},
		{"Q1@$ROW2$", "Q1"},
		{"household#2#member", "member"},
		{"nested#1#field@3#subfield@7", "subfield"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseKey(tt.key))
		})
	}
}

func TestChildKey(t *testing.T) {
	assert.Equal(t, "household#2#member", ChildKey("household", 2, "member"))
	assert.Equal(t, "outer#1#inner#3#leaf", ChildKey("outer#1#inner", 3, "leaf"))
}

func TestSiblingKeys(t *testing.T) {
	got := siblingKeys("household#2#member", "income", 2)
	assert.Equal(t, []string{"household#2#income"}, got)

	got = siblingKeys("outer#1#inner#3#leaf", "peer", 1)
	assert.Equal(t, []string{"outer#1#peer"}, got)

	assert.Empty(t, siblingKeys("Q1", "peer", 0))
}
