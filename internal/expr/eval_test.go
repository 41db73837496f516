// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubContext backs tests with a plain value map.
type stubContext struct {
	values map[string]any
	props  map[string]any
	answer any
	rows   []int
}

func (s *stubContext) GetValue(key string) any {
	if v, ok := s.values[key]; ok {
		return v
	}
	return ""
}

func (s *stubContext) GetRowIndex(level int) int {
	if level < 0 || level >= len(s.rows) {
		return 0
	}
	return s.rows[len(s.rows)-1-level]
}

func (s *stubContext) GetProp(key string) any { return s.props[key] }

func (s *stubContext) Answer() any { return s.answer }

func TestEvaluate_Literals(t *testing.T) {
	ctx := &stubContext{}

	tests := []struct {
		src  string
		want any
	}{
		{"42", float64(42)},
		{"3.5", 3.5},
		{"2e3", float64(2000)},
		{"'hello'", "hello"},
		{`"wo\"rld"`, `wo"rld`},
		{"true", true},
		{"false", false},
		{"null", nil},
		{"[1, 2, 3]", []any{float64(1), float64(2), float64(3)}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			res := Evaluate(tt.src, ctx, nil)
			require.True(t, res.Success, res.Error)
			assert.Equal(t, tt.want, res.Value)
		})
	}
}

func TestEvaluate_Operators(t *testing.T) {
	ctx := &stubContext{}

	tests := []struct {
		src  string
		want any
	}{
		{"1 + 2 * 3", float64(7)},
		{"(1 + 2) * 3", float64(9)},
		{"10 % 3", float64(1)},
		{"-5 + 2", float64(-3)},
		{"'a' + 'b'", "ab"},
		{"'total: ' + 3", "total: 3"},
		{"1 + '2'", "12"},
		{"'5' - 2", float64(3)},
		{"2 < 3", true},
		{"'b' > 'a'", true},
		{"1 == '1'", true},
		{"1 === '1'", false},
		{"1 === 1", true},
		{"null == undefined", true},
		{"null === undefined", false},
		{"2 !== 3", true},
		{"!''", true},
		{"true && 'yes'", "yes"},
		{"0 || 'fallback'", "fallback"},
		{"'' ? 'a' : 'b'", "b"},
		{"5 > 3 ? 'big' : 'small'", "big"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			res := Evaluate(tt.src, ctx, nil)
			require.True(t, res.Success, res.Error)
			assert.Equal(t, tt.want, res.Value)
		})
	}
}

func TestEvaluate_Builtins(t *testing.T) {
	ctx := &stubContext{}

	tests := []struct {
		src  string
		want any
	}{
		{"Math.floor(3.9)", float64(3)},
		{"Math.max(1, 9, 4)", float64(9)},
		{"Math.pow(2, 10)", float64(1024)},
		{"Number('12')", float64(12)},
		{"String(12)", "12"},
		{"Boolean('')", false},
		{"parseInt('42px')", float64(42)},
		{"parseInt('ff', 16)", float64(255)},
		{"parseFloat('3.14 is pi')", 3.14},
		{"isNaN('abc')", true},
		{"Array.isArray([1])", true},
		{"Array.isArray('no')", false},
		{"JSON.stringify([1,2])", "[1,2]"},
		{"JSON.parse('{\"a\":1}').a", float64(1)},
		{"RegExp('^[0-9]+$').test('123')", true},
		{"RegExp('^abc$', 'i').test('ABC')", true},
		{"encodeURIComponent('a b&c')", "a%20b%26c"},
		{"decodeURIComponent('a%20b')", "a b"},
		{"'Hello'.toLowerCase()", "hello"},
		{"'a,b,c'.split(',').length", float64(3)},
		{"'hello'.includes('ell')", true},
		{"[1,2,3].includes(2)", true},
		{"[1,2,3].indexOf(9)", float64(-1)},
		{"['a','b'].join('-')", "a-b"},
		{"'abcdef'.substring(1, 3)", "bc"},
		{"'abcdef'.slice(-2)", "ef"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			res := Evaluate(tt.src, ctx, nil)
			require.True(t, res.Success, res.Error)
			assert.Equal(t, tt.want, res.Value)
		})
	}
}

func TestEvaluate_ContextBindings(t *testing.T) {
	ctx := &stubContext{
		values: map[string]any{"Q1": "yes", "Q2": float64(7)},
		props:  map[string]any{"region": "33"},
		answer: "hello",
		rows:   []int{2, 5},
	}

	tests := []struct {
		src  string
		want any
	}{
		{"getValue('Q1')", "yes"},
		{"getValue('Q1') === 'yes'", true},
		{"getValue('missing')", ""},
		{"getValue('Q2') + 1", float64(8)},
		{"answer", "hello"},
		{"answer.length", float64(5)},
		{"rowIndex", float64(5)},
		{"getRowIndex(0)", float64(5)},
		{"getRowIndex(1)", float64(2)},
		{"getProp('region')", "33"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			res := Evaluate(tt.src, ctx, nil)
			require.True(t, res.Success, res.Error)
			assert.Equal(t, tt.want, res.Value)
		})
	}
}

func TestEvaluate_SandboxRejectsHostAccess(t *testing.T) {
	ctx := &stubContext{}

	for _, src := range []string{
		"window.location",
		"document.cookie",
		"require('fs')",
		"process.env",
		"globalThis",
		"eval('1')",
		"Function('return 1')",
		"someUnknownName",
	} {
		t.Run(src, func(t *testing.T) {
			res := Evaluate(src, ctx, "fallback")
			assert.False(t, res.Success)
			assert.Equal(t, "fallback", res.Value)
			assert.NotEmpty(t, res.Error)
		})
	}
}

func TestEvaluate_RuntimeErrorFallsBack(t *testing.T) {
	ctx := &stubContext{}

	res := Evaluate("null.foo", ctx, true)
	assert.False(t, res.Success)
	assert.Equal(t, true, res.Value)
	assert.NotEmpty(t, res.Error)
}

func TestEvaluate_EmptyExpression(t *testing.T) {
	ctx := &stubContext{}

	res := Evaluate("   ", ctx, "default")
	assert.True(t, res.Success)
	assert.Equal(t, "default", res.Value)
}
