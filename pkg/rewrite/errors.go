package rewrite

import (
	"errors"
	"fmt"
)

// ReferenceError reports a template reference to a capture group that
// does not exist on the pattern or did not participate in the match.
type ReferenceError struct {
	// Ref is the reference id as written in the template.
	Ref string
	// Input is the subject text of the failing match.
	Input string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("reference error: no capture for $%s in %q", e.Ref, e.Input)
}

// NewReferenceError creates a new reference error.
func NewReferenceError(ref, input string) error {
	return &ReferenceError{Ref: ref, Input: input}
}

// EvaluationError reports an expression that failed at evaluation time:
// an undefined identifier, a type or arity mismatch, or an arithmetic
// error.
type EvaluationError struct {
	Expression string
	Cause      error
}

func (e *EvaluationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("evaluation error for expression '%s': %v", e.Expression, e.Cause)
	}
	return fmt.Sprintf("evaluation error for expression '%s'", e.Expression)
}

func (e *EvaluationError) Unwrap() error {
	return e.Cause
}

// NewEvaluationError creates a new evaluation error.
func NewEvaluationError(expression string, cause error) error {
	return &EvaluationError{Expression: expression, Cause: cause}
}

// TemplateError reports a template that failed to compile: under strict
// mode, an expression region whose raw text does not parse. It is a
// construction-time failure, never a render-time one.
type TemplateError struct {
	Expression string
	Position   int
	Cause      error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template error at position %d near '%s': %v", e.Position, e.Expression, e.Cause)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// NewTemplateError creates a new template error.
func NewTemplateError(expression string, position int, cause error) error {
	return &TemplateError{Expression: expression, Position: position, Cause: cause}
}

// IsReferenceError checks if an error is a reference error.
func IsReferenceError(err error) bool {
	var target *ReferenceError
	return errors.As(err, &target)
}

// IsEvaluationError checks if an error is an evaluation error.
func IsEvaluationError(err error) bool {
	var target *EvaluationError
	return errors.As(err, &target)
}

// IsTemplateError checks if an error is a template error.
func IsTemplateError(err error) bool {
	var target *TemplateError
	return errors.As(err, &target)
}
