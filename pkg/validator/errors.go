package validator

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownRule is matched by errors produced when a rule annotation names
	// a rule that has no registered predicate.
	ErrUnknownRule = errors.New("unknown validation rule")

	// ErrMissingTemplate is matched by errors produced when a failing rule has no
	// message template and no own error handler.
	ErrMissingTemplate = errors.New("missing message template")

	// ErrInvalidTemplates is returned when a template document cannot be decoded.
	ErrInvalidTemplates = errors.New("invalid message templates")
)

// UnknownRuleError reports a rule name without a registered predicate.
type UnknownRuleError struct {
	Rule string
}

func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownRule, e.Rule)
}

func (e *UnknownRuleError) Unwrap() error { return ErrUnknownRule }

// MissingTemplateError reports a failing rule that has nothing to render its message from.
type MissingTemplateError struct {
	Rule string
}

func (e *MissingTemplateError) Error() string {
	return fmt.Sprintf("%s for rule %q", ErrMissingTemplate, e.Rule)
}

func (e *MissingTemplateError) Unwrap() error { return ErrMissingTemplate }
