// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package expr

import (
	"math"
	"strconv"
	"strings"
)

// undefinedType is the evaluator's "undefined" sentinel, distinct from nil
// (null). EvaluateVariable maps it to a Go nil at the package boundary.
type undefinedType struct{}

// Undefined is the value of the `undefined` literal.
var Undefined = undefinedType{}

// IsTruthy reports JS truthiness: false, 0, NaN, "", null and undefined are
// falsy, everything else is truthy.
func IsTruthy(v any) bool {
	switch x := v.(type) {
	case nil, undefinedType:
		return false
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case int:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}

// toNumber applies JS numeric coercion. Unconvertible values become NaN.
func toNumber(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case undefinedType:
		return math.NaN()
	case bool:
		if x {
			return 1
		}
		return 0
	case float64:
		return x
	case int:
		return float64(x)
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return n
	case []any:
		if len(x) == 0 {
			return 0
		}
		if len(x) == 1 {
			return toNumber(x[0])
		}
		return math.NaN()
	default:
		return math.NaN()
	}
}

// toText applies JS string coercion.
func toText(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case undefinedType:
		return "undefined"
	case bool:
		if x {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(x)
	case int:
		return strconv.Itoa(x)
	case string:
		return x
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			if e == nil || e == any(Undefined) {
				parts[i] = ""
				continue
			}
			parts[i] = toText(e)
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

// strictEquals implements === : same type, same value.
func strictEquals(a, b any) bool {
	switch x := a.(type) {
	case nil:
		_, bn := b.(undefinedType)
		return b == nil && !bn
	case undefinedType:
		_, bu := b.(undefinedType)
		return bu
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case float64:
		y, ok := numberOf(b)
		return ok && x == y
	case int:
		y, ok := numberOf(b)
		return ok && float64(x) == y
	case string:
		y, ok := b.(string)
		return ok && x == y
	default:
		// Reference equality is not meaningful for decoded JSON values.
		return false
	}
}

func numberOf(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}

// looseEquals implements == with JS coercion rules (numbers, strings and
// booleans compare numerically; null and undefined equal each other only).
func looseEquals(a, b any) bool {
	aNil := a == nil || a == any(Undefined)
	bNil := b == nil || b == any(Undefined)
	if aNil || bNil {
		return aNil && bNil
	}
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return sa == sb
		}
	}
	na, nb := toNumber(a), toNumber(b)
	if math.IsNaN(na) || math.IsNaN(nb) {
		return false
	}
	return na == nb
}
