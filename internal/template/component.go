// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package template

// Kind discriminates component behavior in the engine.
type Kind string

const (
	KindSection  Kind = "section"
	KindText     Kind = "text"
	KindNumber   Kind = "number"
	KindSelect   Kind = "select"
	KindRadio    Kind = "radio"
	KindCheckbox Kind = "checkbox"
	KindDate     Kind = "date"
	KindNested   Kind = "nested"
	KindVariable Kind = "variable"
)

// IsInput reports whether the kind accepts a user-provided answer.
func (k Kind) IsInput() bool {
	switch k {
	case KindSection, KindNested, KindVariable:
		return false
	default:
		return true
	}
}

// Severity grades a validation rule.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Validation is one rule attached to a component. Test is a fail-state
// predicate: it evaluates to true when the answer is invalid.
type Validation struct {
	Test     string   `json:"test" yaml:"test"`
	Message  string   `json:"message" yaml:"message"`
	Severity Severity `json:"severity,omitempty" yaml:"severity,omitempty"`
}

// Option is one selectable choice of a select/radio/checkbox component.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Component is one template node: an input, a section, a repeating group or a
// computed variable.
type Component struct {
	DataKey     string `json:"dataKey" yaml:"dataKey"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Kind        Kind   `json:"type" yaml:"type"`

	// EnableCondition controls visibility/activity. Blank means always
	// enabled.
	EnableCondition string `json:"enableCondition,omitempty" yaml:"enableCondition,omitempty"`

	// Validations run in declared order on the current answer.
	Validations []Validation `json:"validations,omitempty" yaml:"validations,omitempty"`

	// Expression computes the value of a variable component.
	Expression string `json:"expression,omitempty" yaml:"expression,omitempty"`

	// SourceQuestion names the question whose answer drives row regeneration
	// of a nested component.
	SourceQuestion string `json:"sourceQuestion,omitempty" yaml:"sourceQuestion,omitempty"`

	// SourceOption names the question whose answer supplies this component's
	// option list.
	SourceOption string `json:"sourceOption,omitempty" yaml:"sourceOption,omitempty"`

	Options []Option `json:"options,omitempty" yaml:"options,omitempty"`

	// Components holds section children, or the row blueprint of a nested
	// component.
	Components []Component `json:"components,omitempty" yaml:"components,omitempty"`
}
