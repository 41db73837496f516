// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package engine

import (
	"regexp"
	"strconv"
	"strings"
)

// Data keys encode repeating-group nesting in two accepted spellings:
//
//	household#2#member        path form, member inside row 2 of household
//	member@2                  suffix form, produced by row-marker resolution
//
// Template expressions reference row siblings through markers:
//
//	income@$ROW$              same row as the evaluating component
//	income@$ROW1$             one nesting level up, @$ROW2$ two up, ...
//
// The marker grammar is a stable external format; see ResolveDataKey.

// rowMarker matches @$ROW$ and @$ROWn$ suffixes.
var rowMarker = regexp.MustCompile(`@\$ROW(\d*)\$`)

// keySegment is one name/row pair of a parsed dataKey.
type keySegment struct {
	name   string
	row    int
	hasRow bool
}

// parseKey splits a dataKey into segments, accepting both the path form
// (name#row) and the suffix form (name@row).
func parseKey(key string) []keySegment {
	if key == "" {
		return nil
	}
	parts := strings.Split(key, "#")
	segs := make([]keySegment, 0, len(parts))
	for _, part := range parts {
		if n, err := strconv.Atoi(part); err == nil && len(segs) > 0 && !segs[len(segs)-1].hasRow {
			segs[len(segs)-1].row = n
			segs[len(segs)-1].hasRow = true
			continue
		}
		seg := keySegment{name: part}
		if at := strings.LastIndexByte(part, '@'); at >= 0 {
			if n, err := strconv.Atoi(part[at+1:]); err == nil {
				seg.name = part[:at]
				seg.row = n
				seg.hasRow = true
			}
		}
		segs = append(segs, seg)
	}
	return segs
}

// rowIndices returns the row indices of a dataKey, outermost first.
func rowIndices(key string) []int {
	var rows []int
	for _, seg := range parseKey(key) {
		if seg.hasRow {
			rows = append(rows, seg.row)
		}
	}
	return rows
}

// RowIndex returns the row index of a dataKey at the given nesting level,
// counting back from the innermost row (level 0). Returns 0 when the key has
// no row at that level.
func RowIndex(dataKey string, level int) int {
	rows := rowIndices(dataKey)
	i := len(rows) - 1 - level
	if level < 0 || i < 0 {
		return 0
	}
	return rows[i]
}

// ResolveDataKey substitutes row markers in a template key using the row
// indices of currentContextKey. @$ROW$ takes the innermost row, @$ROWn$
// strips n nesting levels. If the context does not carry enough row segments
// the key is returned unchanged: a visible downstream miss is preferable to a
// silent resolution into the wrong row.
func ResolveDataKey(templateKey, currentContextKey string) string {
	if !strings.Contains(templateKey, "@$ROW") {
		return templateKey
	}
	rows := rowIndices(currentContextKey)
	resolved := true
	out := rowMarker.ReplaceAllStringFunc(templateKey, func(m string) string {
		level := 0
		if digits := rowMarker.FindStringSubmatch(m)[1]; digits != "" {
			level, _ = strconv.Atoi(digits)
		}
		i := len(rows) - 1 - level
		if i < 0 {
			resolved = false
			return m
		}
		return "@" + strconv.Itoa(rows[i])
	})
	if !resolved {
		return templateKey
	}
	return out
}

// BaseKey strips row context from a dataKey, leaving the template-level
// component name the dependency maps are keyed on. Row markers, row suffixes
// and path prefixes are all removed.
func BaseKey(dataKey string) string {
	if i := rowMarker.FindStringIndex(dataKey); i != nil {
		dataKey = dataKey[:i[0]] + dataKey[i[1]:]
	}
	segs := parseKey(dataKey)
	if len(segs) == 0 {
		return dataKey
	}
	name := segs[len(segs)-1].name
	if at := strings.IndexByte(name, '@'); at >= 0 {
		name = name[:at]
	}
	return name
}

// ChildKey builds the canonical dataKey for a component materialized inside
// row `row` of a repeating group.
func ChildKey(groupKey string, row int, name string) string {
	return groupKey + "#" + strconv.Itoa(row) + "#" + name
}

// siblingKeys expands a suffix-form key (name@row) into candidate canonical
// keys within the context's row chain, innermost first. GetValue tries these
// when a marker-resolved key has no direct index entry.
func siblingKeys(contextKey, name string, row int) []string {
	segs := parseKey(contextKey)
	var out []string
	for i := len(segs) - 1; i >= 0; i-- {
		if !segs[i].hasRow || segs[i].row != row {
			continue
		}
		var b strings.Builder
		for _, seg := range segs[:i+1] {
			if b.Len() > 0 {
				b.WriteByte('#')
			}
			b.WriteString(seg.name)
			if seg.hasRow {
				b.WriteByte('#')
				b.WriteString(strconv.Itoa(seg.row))
			}
		}
		b.WriteByte('#')
		b.WriteString(name)
		out = append(out, b.String())
	}
	return out
}
