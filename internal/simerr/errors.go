// Package simerr classifies the failures of a simulation run.
package simerr

import (
	stderrors "errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind is a coarse-grained categorization for simulation errors.
type Kind string

const (
	KindValidation Kind = "validation"
	KindDomain     Kind = "domain"
	KindLinkage    Kind = "linkage"
)

// Error wraps a failure with the operation that raised it and its kind.
type Error struct {
	Op   string
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	if e.Msg != "" {
		base += ": " + e.Msg
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Validation reports malformed or out-of-domain manual input.
func Validation(op, format string, args ...any) error {
	return newError(op, KindValidation, nil, format, args...)
}

// Domain reports a sampling input outside its mathematical domain.
func Domain(op, format string, args ...any) error {
	return newError(op, KindDomain, nil, format, args...)
}

// Linkage reports a loan whose property reference is broken.
func Linkage(op, format string, args ...any) error {
	return newError(op, KindLinkage, nil, format, args...)
}

// WrapValidation classifies an underlying decode or validator failure.
func WrapValidation(op string, err error) error {
	if err == nil {
		return nil
	}
	return newError(op, KindValidation, err, "")
}

func newError(op string, kind Kind, cause error, format string, args ...any) error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return pkgerrors.WithStack(&Error{Op: op, Kind: kind, Msg: msg, Err: cause})
}

// IsKind reports whether err carries a simulation error of the given kind.
func IsKind(err error, kind Kind) bool {
	var se *Error
	if stderrors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}

// Code maps err to the message code used in simulation responses.
func Code(err error) string {
	var se *Error
	if !stderrors.As(err, &se) {
		return "INTERNAL_ERROR"
	}
	switch se.Kind {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindDomain:
		return "DOMAIN_ERROR"
	case KindLinkage:
		return "LINKAGE_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}
