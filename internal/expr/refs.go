// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package expr

import "regexp"

// getValueRef matches getValue('X') / getValue("X") in raw text. Used as a
// fallback when the expression does not parse, so linting still surfaces the
// references of a broken condition.
var getValueRef = regexp.MustCompile(`getValue\(\s*(?:'([^']*)'|"([^"]*)")\s*\)`)

// ExtractReferences returns the dataKeys an expression reads via getValue,
// de-duplicated, in first-occurrence order. The result seeds the dependency
// maps at template-load (or dynamic-row) time so evaluation never re-parses.
func ExtractReferences(src string) []string {
	n, err := parse(src)
	if err != nil {
		return extractRefsText(src)
	}
	var out []string
	seen := make(map[string]struct{})
	walkRefs(n, func(key string) {
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, key)
	})
	return out
}

func walkRefs(n node, visit func(string)) {
	switch x := n.(type) {
	case callExpr:
		if id, ok := x.callee.(ident); ok && id.name == "getValue" && len(x.args) > 0 {
			if lit, ok := x.args[0].(stringLit); ok {
				visit(lit.value)
			}
		}
		walkRefs(x.callee, visit)
		for _, a := range x.args {
			walkRefs(a, visit)
		}
	case arrayLit:
		for _, e := range x.elems {
			walkRefs(e, visit)
		}
	case unaryExpr:
		walkRefs(x.x, visit)
	case binaryExpr:
		walkRefs(x.l, visit)
		walkRefs(x.r, visit)
	case conditionalExpr:
		walkRefs(x.cond, visit)
		walkRefs(x.then, visit)
		walkRefs(x.alt, visit)
	case memberExpr:
		walkRefs(x.x, visit)
	case indexExpr:
		walkRefs(x.x, visit)
		walkRefs(x.index, visit)
	}
}

func extractRefsText(src string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, m := range getValueRef.FindAllStringSubmatch(src, -1) {
		key := m[1]
		if key == "" {
			key = m[2]
		}
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
