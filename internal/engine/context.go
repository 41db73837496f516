// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package engine

// evalContext adapts the reference index to the expression sandbox for one
// evaluating reference. Row markers in getValue keys resolve against the
// reference's own dataKey.
type evalContext struct {
	idx   *Index
	self  *Reference
	props map[string]any
}

func (c evalContext) GetValue(key string) any {
	return c.idx.GetValue(key, c.self.DataKey)
}

func (c evalContext) GetRowIndex(level int) int {
	return RowIndex(c.self.DataKey, level)
}

func (c evalContext) GetProp(key string) any {
	return c.props[key]
}

func (c evalContext) Answer() any {
	return c.self.Answer
}
