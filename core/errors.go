package core

import (
	"errors"
	"fmt"
)

var (
	// ErrDomainValidation matches every *ValidationError.
	ErrDomainValidation = errors.New("domain validation failed")

	// ErrUnknownAttribute matches every *UnknownAttributeError.
	ErrUnknownAttribute = errors.New("unknown attribute")

	// ErrAttributeUpdate matches every *AttributeUpdateError.
	ErrAttributeUpdate = errors.New("attribute update failed")

	// ErrBusinessRuleViolation matches every *BusinessRuleViolationError.
	ErrBusinessRuleViolation = errors.New("business rule violated")
)

// ValidationError reports a field value that violates the field's invariant.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrDomainValidation) report true.
func (e *ValidationError) Is(target error) bool {
	return target == ErrDomainValidation
}

// UnknownAttributeError reports an UpdateAttribute call for a field the aggregate does not expose.
type UnknownAttributeError struct {
	Aggregate string
	Attribute string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("<%s> has no attribute <%s>", e.Aggregate, e.Attribute)
}

// Is makes errors.Is(err, ErrUnknownAttribute) report true.
func (e *UnknownAttributeError) Is(target error) bool {
	return target == ErrUnknownAttribute
}

// AttributeUpdateError reports a failed generic attribute update.
// Expected and Received are set for type mismatches; Cause is set when the
// field's own validation rejected the value.
type AttributeUpdateError struct {
	Aggregate string
	Attribute string
	Expected  string
	Received  string
	Cause     error
}

func (e *AttributeUpdateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("updating <%s> of <%s> failed: %s", e.Attribute, e.Aggregate, e.Cause.Error())
	}

	return fmt.Sprintf(
		"invalid type for attribute <%s> of <%s>: expected <%s>, received <%s>",
		e.Attribute, e.Aggregate, e.Expected, e.Received,
	)
}

// Unwrap returns the validation error raised by the field's setter, if any.
func (e *AttributeUpdateError) Unwrap() error {
	return e.Cause
}

// Is makes errors.Is(err, ErrAttributeUpdate) report true.
func (e *AttributeUpdateError) Is(target error) bool {
	return target == ErrAttributeUpdate
}

// BusinessRuleViolationError reports a violated rule that spans more than one entity,
// e.g. a duplicate tenant name. It is raised by application services, not by the aggregates.
type BusinessRuleViolationError struct {
	Rule   string
	Reason string
}

// NewBusinessRuleViolationError creates a BusinessRuleViolationError.
func NewBusinessRuleViolationError(rule, reason string) *BusinessRuleViolationError {
	return &BusinessRuleViolationError{Rule: rule, Reason: reason}
}

func (e *BusinessRuleViolationError) Error() string {
	return fmt.Sprintf("business rule %s violated: %s", e.Rule, e.Reason)
}

// Is makes errors.Is(err, ErrBusinessRuleViolation) report true.
func (e *BusinessRuleViolationError) Is(target error) bool {
	return target == ErrBusinessRuleViolation
}
