// Package apperr defines the error kinds returned by the hiring core.
//
// Every failure is one of three kinds:
//
//   - NotFound: unknown application, interview or interviewer
//   - BusinessRule: invalid transition, scheduling conflict, invalid request
//   - Unexpected: anything else, wrapped with context
//
// Errors carry stack traces through github.com/cockroachdb/errors.
package apperr

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Kind classifies an error for callers such as the HTTP layer.
type Kind int

const (
	KindUnexpected Kind = iota
	KindNotFound
	KindBusinessRule
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindBusinessRule:
		return "business_rule_violation"
	default:
		return "unexpected"
	}
}

// NotFoundError indicates a referenced resource does not exist.
type NotFoundError struct {
	Resource string
	ID       any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %v", e.Resource, e.ID)
}

// BusinessRuleError indicates a request that violates a pipeline or scheduling rule.
type BusinessRuleError struct {
	Message string
}

func (e *BusinessRuleError) Error() string {
	return e.Message
}

// NotFound returns a NotFound error for the given resource and identifier.
func NotFound(resource string, id any) error {
	return errors.WithStackDepth(&NotFoundError{Resource: resource, ID: id}, 1)
}

// BusinessRule returns a BusinessRule error with a formatted message.
func BusinessRule(format string, args ...any) error {
	return errors.WithStackDepth(&BusinessRuleError{Message: fmt.Sprintf(format, args...)}, 1)
}

// Unexpected wraps err with context. A nil err yields nil.
func Unexpected(err error, context string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, context)
}

// KindOf reports the kind of err. Nil errors are reported as KindUnexpected.
func KindOf(err error) Kind {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return KindNotFound
	}
	var br *BusinessRuleError
	if errors.As(err, &br) {
		return KindBusinessRule
	}
	return KindUnexpected
}

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}

// IsBusinessRule reports whether err is or wraps a BusinessRuleError.
func IsBusinessRule(err error) bool {
	return err != nil && KindOf(err) == KindBusinessRule
}
