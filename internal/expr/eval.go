// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package expr

import (
	"fmt"
	"math"
	"strings"
)

// Context is the only host surface visible to expression text. Implementations
// resolve field values against the form's reference index.
type Context interface {
	// GetValue returns the current answer for a dataKey, "" when the field is
	// missing or disabled.
	GetValue(key string) any
	// GetRowIndex returns the row index of the evaluating component, level
	// nesting levels up (0 = innermost).
	GetRowIndex(level int) int
	// GetProp returns a template-level configuration property.
	GetProp(key string) any
	// Answer is the evaluating component's own current value.
	Answer() any
}

// evaluator walks the expression tree against a Context.
type evaluator struct {
	ctx Context
}

func (e *evaluator) eval(n node) (any, error) {
	switch x := n.(type) {
	case numberLit:
		return x.value, nil
	case stringLit:
		return x.value, nil
	case boolLit:
		return x.value, nil
	case nullLit:
		return nil, nil
	case undefinedLit:
		return Undefined, nil
	case arrayLit:
		out := make([]any, len(x.elems))
		for i, el := range x.elems {
			v, err := e.eval(el)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case ident:
		return e.resolveIdent(x.name)
	case unaryExpr:
		return e.evalUnary(x)
	case binaryExpr:
		return e.evalBinary(x)
	case conditionalExpr:
		cond, err := e.eval(x.cond)
		if err != nil {
			return nil, err
		}
		if IsTruthy(cond) {
			return e.eval(x.then)
		}
		return e.eval(x.alt)
	case memberExpr:
		recv, err := e.eval(x.x)
		if err != nil {
			return nil, err
		}
		return member(recv, x.name)
	case indexExpr:
		recv, err := e.eval(x.x)
		if err != nil {
			return nil, err
		}
		key, err := e.eval(x.index)
		if err != nil {
			return nil, err
		}
		return indexValue(recv, key)
	case callExpr:
		return e.evalCall(x)
	default:
		return nil, fmt.Errorf("unsupported expression node %T", n)
	}
}

func (e *evaluator) resolveIdent(name string) (any, error) {
	switch name {
	case "answer":
		return normalize(e.ctx.Answer()), nil
	case "rowIndex":
		return float64(e.ctx.GetRowIndex(0)), nil
	case "getValue":
		return builtinFunc(func(args []any) (any, error) {
			return normalize(e.ctx.GetValue(toText(arg(args, 0)))), nil
		}), nil
	case "getRowIndex":
		return builtinFunc(func(args []any) (any, error) {
			level := 0
			if len(args) > 0 {
				level = int(toNumber(args[0]))
			}
			return float64(e.ctx.GetRowIndex(level)), nil
		}), nil
	case "getProp":
		return builtinFunc(func(args []any) (any, error) {
			return normalize(e.ctx.GetProp(toText(arg(args, 0)))), nil
		}), nil
	}
	if v, ok := globals[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("%s is not defined", name)
}

func (e *evaluator) evalUnary(x unaryExpr) (any, error) {
	v, err := e.eval(x.x)
	if err != nil {
		return nil, err
	}
	switch x.op {
	case "!":
		return !IsTruthy(v), nil
	case "-":
		return -toNumber(v), nil
	case "+":
		return toNumber(v), nil
	}
	return nil, fmt.Errorf("unsupported unary operator %q", x.op)
}

func (e *evaluator) evalBinary(x binaryExpr) (any, error) {
	// && and || short-circuit and yield the deciding operand, as in JS.
	if x.op == "&&" || x.op == "||" {
		l, err := e.eval(x.l)
		if err != nil {
			return nil, err
		}
		if x.op == "&&" && !IsTruthy(l) {
			return l, nil
		}
		if x.op == "||" && IsTruthy(l) {
			return l, nil
		}
		return e.eval(x.r)
	}

	l, err := e.eval(x.l)
	if err != nil {
		return nil, err
	}
	r, err := e.eval(x.r)
	if err != nil {
		return nil, err
	}

	switch x.op {
	case "+":
		if ls, ok := l.(string); ok {
			return ls + toText(r), nil
		}
		if rs, ok := r.(string); ok {
			return toText(l) + rs, nil
		}
		return toNumber(l) + toNumber(r), nil
	case "-":
		return toNumber(l) - toNumber(r), nil
	case "*":
		return toNumber(l) * toNumber(r), nil
	case "/":
		return toNumber(l) / toNumber(r), nil
	case "%":
		return math.Mod(toNumber(l), toNumber(r)), nil
	case "==":
		return looseEquals(l, r), nil
	case "!=":
		return !looseEquals(l, r), nil
	case "===":
		return strictEquals(l, r), nil
	case "!==":
		return !strictEquals(l, r), nil
	case "<", "<=", ">", ">=":
		return compare(x.op, l, r), nil
	}
	return nil, fmt.Errorf("unsupported operator %q", x.op)
}

func compare(op string, l, r any) bool {
	if ls, ok := l.(string); ok {
		if rs, ok := r.(string); ok {
			switch op {
			case "<":
				return ls < rs
			case "<=":
				return ls <= rs
			case ">":
				return ls > rs
			default:
				return ls >= rs
			}
		}
	}
	ln, rn := toNumber(l), toNumber(r)
	if math.IsNaN(ln) || math.IsNaN(rn) {
		return false
	}
	switch op {
	case "<":
		return ln < rn
	case "<=":
		return ln <= rn
	case ">":
		return ln > rn
	default:
		return ln >= rn
	}
}

func (e *evaluator) evalCall(x callExpr) (any, error) {
	callee, err := e.eval(x.callee)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(builtinFunc)
	if !ok {
		return nil, fmt.Errorf("value is not callable")
	}
	args := make([]any, len(x.args))
	for i, a := range x.args {
		v, err := e.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return fn(args)
}

// member resolves property access on whitelisted receiver shapes.
func member(recv any, name string) (any, error) {
	switch r := recv.(type) {
	case map[string]any:
		if v, ok := r[name]; ok {
			return v, nil
		}
		return Undefined, nil
	case string:
		return stringMember(r, name)
	case []any:
		return arrayMember(r, name)
	case nil, undefinedType:
		return nil, fmt.Errorf("cannot read property %q of %s", name, toText(recv))
	default:
		return Undefined, nil
	}
}

func indexValue(recv, key any) (any, error) {
	switch r := recv.(type) {
	case []any:
		i := int(toNumber(key))
		if i < 0 || i >= len(r) {
			return Undefined, nil
		}
		return r[i], nil
	case string:
		i := int(toNumber(key))
		if i < 0 || i >= len(r) {
			return Undefined, nil
		}
		return string(r[i]), nil
	case map[string]any:
		return member(r, toText(key))
	case nil, undefinedType:
		return nil, fmt.Errorf("cannot index %s", toText(recv))
	default:
		return Undefined, nil
	}
}

func stringMember(s, name string) (any, error) {
	switch name {
	case "length":
		return float64(len(s)), nil
	case "includes":
		return builtinFunc(func(args []any) (any, error) {
			return strings.Contains(s, toText(arg(args, 0))), nil
		}), nil
	case "indexOf":
		return builtinFunc(func(args []any) (any, error) {
			return float64(strings.Index(s, toText(arg(args, 0)))), nil
		}), nil
	case "startsWith":
		return builtinFunc(func(args []any) (any, error) {
			return strings.HasPrefix(s, toText(arg(args, 0))), nil
		}), nil
	case "endsWith":
		return builtinFunc(func(args []any) (any, error) {
			return strings.HasSuffix(s, toText(arg(args, 0))), nil
		}), nil
	case "substring":
		return builtinFunc(func(args []any) (any, error) {
			start, end := sliceBounds(len(s), args)
			return s[start:end], nil
		}), nil
	case "slice":
		return builtinFunc(func(args []any) (any, error) {
			start, end := sliceBoundsNeg(len(s), args)
			return s[start:end], nil
		}), nil
	case "split":
		return builtinFunc(func(args []any) (any, error) {
			parts := strings.Split(s, toText(arg(args, 0)))
			out := make([]any, len(parts))
			for i, p := range parts {
				out[i] = p
			}
			return out, nil
		}), nil
	case "trim":
		return builtinFunc(func([]any) (any, error) {
			return strings.TrimSpace(s), nil
		}), nil
	case "toLowerCase":
		return builtinFunc(func([]any) (any, error) {
			return strings.ToLower(s), nil
		}), nil
	case "toUpperCase":
		return builtinFunc(func([]any) (any, error) {
			return strings.ToUpper(s), nil
		}), nil
	case "replace":
		return builtinFunc(func(args []any) (any, error) {
			return strings.Replace(s, toText(arg(args, 0)), toText(arg(args, 1)), 1), nil
		}), nil
	case "concat":
		return builtinFunc(func(args []any) (any, error) {
			out := s
			for _, a := range args {
				out += toText(a)
			}
			return out, nil
		}), nil
	}
	return Undefined, nil
}

func arrayMember(a []any, name string) (any, error) {
	switch name {
	case "length":
		return float64(len(a)), nil
	case "includes":
		return builtinFunc(func(args []any) (any, error) {
			for _, e := range a {
				if strictEquals(e, arg(args, 0)) {
					return true, nil
				}
			}
			return false, nil
		}), nil
	case "indexOf":
		return builtinFunc(func(args []any) (any, error) {
			for i, e := range a {
				if strictEquals(e, arg(args, 0)) {
					return float64(i), nil
				}
			}
			return float64(-1), nil
		}), nil
	case "join":
		return builtinFunc(func(args []any) (any, error) {
			sep := ","
			if len(args) > 0 {
				sep = toText(args[0])
			}
			parts := make([]string, len(a))
			for i, e := range a {
				parts[i] = toText(e)
			}
			return strings.Join(parts, sep), nil
		}), nil
	case "slice":
		return builtinFunc(func(args []any) (any, error) {
			start, end := sliceBoundsNeg(len(a), args)
			out := make([]any, end-start)
			copy(out, a[start:end])
			return out, nil
		}), nil
	case "concat":
		return builtinFunc(func(args []any) (any, error) {
			out := make([]any, len(a))
			copy(out, a)
			for _, x := range args {
				if xs, ok := x.([]any); ok {
					out = append(out, xs...)
				} else {
					out = append(out, x)
				}
			}
			return out, nil
		}), nil
	}
	return Undefined, nil
}

// sliceBounds clamps substring-style (start, end) arguments.
func sliceBounds(n int, args []any) (int, int) {
	start, end := 0, n
	if len(args) > 0 {
		start = clamp(int(toNumber(args[0])), 0, n)
	}
	if len(args) > 1 && args[1] != any(Undefined) {
		end = clamp(int(toNumber(args[1])), 0, n)
	}
	if start > end {
		start, end = end, start
	}
	return start, end
}

// sliceBoundsNeg supports slice-style negative indices.
func sliceBoundsNeg(n int, args []any) (int, int) {
	start, end := 0, n
	if len(args) > 0 {
		start = int(toNumber(args[0]))
		if start < 0 {
			start += n
		}
		start = clamp(start, 0, n)
	}
	if len(args) > 1 && args[1] != any(Undefined) {
		end = int(toNumber(args[1]))
		if end < 0 {
			end += n
		}
		end = clamp(end, 0, n)
	}
	if start > end {
		return start, start
	}
	return start, end
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// normalize converts host values (context answers, props) into the
// evaluator's value domain.
func normalize(v any) any {
	switch x := v.(type) {
	case nil:
		return ""
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	default:
		return v
	}
}
