// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

// Package expr evaluates template-authored expressions inside a closed
// sandbox. Expressions are untrusted content: the evaluator exposes only the
// context bindings (getValue, getRowIndex, getProp, answer, rowIndex) and a
// fixed whitelist of builtins, and converts every syntax or runtime failure
// into a defaulted Result instead of an error escaping the boundary.
package expr

import (
	"fmt"
	"strings"
)

// Result is the outcome of evaluating one expression. On failure Value holds
// the caller-supplied default and Error carries the diagnostic.
type Result struct {
	Success bool
	Value   any
	Error   string
}

// Evaluate runs src against ctx. Empty source yields the default without
// evaluation. Failures of any kind degrade to the default.
func Evaluate(src string, ctx Context, defaultValue any) Result {
	if strings.TrimSpace(src) == "" {
		return Result{Success: true, Value: defaultValue}
	}
	n, err := parse(src)
	if err != nil {
		return Result{Value: defaultValue, Error: err.Error()}
	}
	v, err := safeEval(n, ctx)
	if err != nil {
		return Result{Value: defaultValue, Error: err.Error()}
	}
	return Result{Success: true, Value: v}
}

// safeEval walks the tree, converting panics into errors so a malformed
// expression can never take down the form session.
func safeEval(n node, ctx Context) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("evaluation panic: %v", r)
		}
	}()
	e := &evaluator{ctx: ctx}
	return e.eval(n)
}

// EvaluateEnableCondition evaluates an enable condition. Blank text means the
// field has no condition and is always enabled. The returned error is a
// diagnostic only; the boolean is already defaulted.
func EvaluateEnableCondition(src string, ctx Context) (bool, error) {
	return evaluateBool(src, ctx, true, true)
}

// EvaluateValidation evaluates a validation test. The test is a fail-state
// predicate: true means the rule fires. Blank text never fires.
func EvaluateValidation(src string, ctx Context) (bool, error) {
	return evaluateBool(src, ctx, false, false)
}

func evaluateBool(src string, ctx Context, blankValue, defaultValue bool) (bool, error) {
	if strings.TrimSpace(src) == "" {
		return blankValue, nil
	}
	res := Evaluate(src, ctx, defaultValue)
	if !res.Success {
		return defaultValue, fmt.Errorf("%s", res.Error)
	}
	return IsTruthy(res.Value), nil
}

// EvaluateVariable evaluates a computed-variable expression. Blank text and
// failures both yield nil: a broken variable degrades to "no computed value".
func EvaluateVariable(src string, ctx Context) (any, error) {
	if strings.TrimSpace(src) == "" {
		return nil, nil
	}
	res := Evaluate(src, ctx, nil)
	if !res.Success {
		return nil, fmt.Errorf("%s", res.Error)
	}
	if res.Value == any(Undefined) {
		return nil, nil
	}
	return res.Value, nil
}

// ValidateSyntax parses src without executing it. Used by template linting,
// not on the evaluation hot path.
func ValidateSyntax(src string) error {
	if strings.TrimSpace(src) == "" {
		return nil
	}
	_, err := parse(src)
	return err
}
