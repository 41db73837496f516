// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package expr

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// builtinFunc is a callable value inside an expression.
type builtinFunc func(args []any) (any, error)

// globals is the whitelist of ambient names visible to expressions. Nothing
// outside this table (and the context bindings) can be referenced.
var globals = map[string]any{
	"NaN":      math.NaN(),
	"Infinity": math.Inf(1),

	"Math": map[string]any{
		"PI":     math.Pi,
		"abs":    numFunc1(math.Abs),
		"ceil":   numFunc1(math.Ceil),
		"floor":  numFunc1(math.Floor),
		"round":  numFunc1(math.Round),
		"trunc":  numFunc1(math.Trunc),
		"sqrt":   numFunc1(math.Sqrt),
		"pow":    builtinFunc(mathPow),
		"min":    builtinFunc(mathMin),
		"max":    builtinFunc(mathMax),
		"random": builtinFunc(mathRandom),
	},

	"Number":  builtinFunc(convertNumber),
	"String":  builtinFunc(convertString),
	"Boolean": builtinFunc(convertBoolean),

	"parseInt":   builtinFunc(parseIntFn),
	"parseFloat": builtinFunc(parseFloatFn),
	"isNaN":      builtinFunc(isNaNFn),

	"Array": map[string]any{
		"isArray": builtinFunc(isArrayFn),
	},

	"JSON": map[string]any{
		"parse":     builtinFunc(jsonParse),
		"stringify": builtinFunc(jsonStringify),
	},

	"Date": map[string]any{
		"now":   builtinFunc(dateNow),
		"parse": builtinFunc(dateParse),
	},

	"RegExp": builtinFunc(newRegExp),

	"encodeURIComponent": builtinFunc(encodeURIComponentFn),
	"decodeURIComponent": builtinFunc(decodeURIComponentFn),
}

func numFunc1(f func(float64) float64) builtinFunc {
	return func(args []any) (any, error) {
		return f(toNumber(arg(args, 0))), nil
	}
}

func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return Undefined
}

func mathPow(args []any) (any, error) {
	return math.Pow(toNumber(arg(args, 0)), toNumber(arg(args, 1))), nil
}

func mathMin(args []any) (any, error) {
	if len(args) == 0 {
		return math.Inf(1), nil
	}
	out := math.Inf(1)
	for _, a := range args {
		n := toNumber(a)
		if math.IsNaN(n) {
			return math.NaN(), nil
		}
		out = math.Min(out, n)
	}
	return out, nil
}

func mathMax(args []any) (any, error) {
	if len(args) == 0 {
		return math.Inf(-1), nil
	}
	out := math.Inf(-1)
	for _, a := range args {
		n := toNumber(a)
		if math.IsNaN(n) {
			return math.NaN(), nil
		}
		out = math.Max(out, n)
	}
	return out, nil
}

func mathRandom([]any) (any, error) {
	return rand.Float64(), nil //nolint:gosec // expression-level convenience, not crypto
}

func convertNumber(args []any) (any, error) {
	return toNumber(arg(args, 0)), nil
}

func convertString(args []any) (any, error) {
	if len(args) == 0 {
		return "", nil
	}
	return toText(args[0]), nil
}

func convertBoolean(args []any) (any, error) {
	return IsTruthy(arg(args, 0)), nil
}

func parseIntFn(args []any) (any, error) {
	s := strings.TrimSpace(toText(arg(args, 0)))
	radix := 10
	if len(args) > 1 {
		if r := int(toNumber(args[1])); r != 0 {
			radix = r
		}
	}
	neg := false
	if strings.HasPrefix(s, "+") {
		s = s[1:]
	} else if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if radix == 16 && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
		s = s[2:]
	}
	end := 0
	for end < len(s) && digitValue(s[end]) < radix {
		end++
	}
	if end == 0 {
		return math.NaN(), nil
	}
	n, err := strconv.ParseInt(s[:end], radix, 64)
	if err != nil {
		return math.NaN(), nil
	}
	if neg {
		n = -n
	}
	return float64(n), nil
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	default:
		return 99
	}
}

func parseFloatFn(args []any) (any, error) {
	s := strings.TrimSpace(toText(arg(args, 0)))
	end := 0
	seenDot, seenExp := false, false
	for end < len(s) {
		c := s[end]
		switch {
		case c >= '0' && c <= '9':
		case c == '.' && !seenDot && !seenExp:
			seenDot = true
		case (c == 'e' || c == 'E') && !seenExp && end > 0:
			seenExp = true
		case (c == '+' || c == '-') && (end == 0 || s[end-1] == 'e' || s[end-1] == 'E'):
		default:
			goto done
		}
		end++
	}
done:
	n, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return math.NaN(), nil
	}
	return n, nil
}

func isNaNFn(args []any) (any, error) {
	return math.IsNaN(toNumber(arg(args, 0))), nil
}

func isArrayFn(args []any) (any, error) {
	_, ok := arg(args, 0).([]any)
	return ok, nil
}

func jsonParse(args []any) (any, error) {
	var out any
	if err := json.Unmarshal([]byte(toText(arg(args, 0))), &out); err != nil {
		return nil, fmt.Errorf("JSON.parse: %w", err)
	}
	return out, nil
}

func jsonStringify(args []any) (any, error) {
	v := arg(args, 0)
	if v == any(Undefined) {
		return Undefined, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("JSON.stringify: %w", err)
	}
	return string(b), nil
}

func dateNow([]any) (any, error) {
	return float64(time.Now().UnixMilli()), nil
}

// dateParse accepts RFC 3339 timestamps and plain dates, returning epoch
// milliseconds or NaN.
func dateParse(args []any) (any, error) {
	s := strings.TrimSpace(toText(arg(args, 0)))
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return float64(t.UnixMilli()), nil
		}
	}
	return math.NaN(), nil
}

// newRegExp compiles a pattern into an object exposing test(). The "i" flag
// is honored; other flags are ignored.
func newRegExp(args []any) (any, error) {
	pattern := toText(arg(args, 0))
	if len(args) > 1 && strings.Contains(toText(args[1]), "i") {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("RegExp: %w", err)
	}
	return map[string]any{
		"test": builtinFunc(func(args []any) (any, error) {
			return re.MatchString(toText(arg(args, 0))), nil
		}),
		"source": re.String(),
	}, nil
}

// encodeURIComponentFn escapes everything except the JS unreserved set.
func encodeURIComponentFn(args []any) (any, error) {
	s := toText(arg(args, 0))
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isURIUnreserved(c) {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String(), nil
}

func isURIUnreserved(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

func decodeURIComponentFn(args []any) (any, error) {
	s := toText(arg(args, 0))
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+3 <= len(s) {
			if n, err := strconv.ParseUint(s[i+1:i+3], 16, 8); err == nil {
				b.WriteByte(byte(n))
				i += 2
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String(), nil
}
