// Package apperrors classifies failures so callers can decide what the
// acting human gets to see: a corrective hint, a rejection, or a retry note.
package apperrors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	// KindValidation covers malformed commands and missing preconditions,
	// e.g. a payment proof sent before any plan was selected.
	KindValidation Kind = "validation"
	// KindAuthorization covers privileged actions invoked by non-approvers.
	KindAuthorization Kind = "authorization"
	// KindCollaborator covers invite issuance, notification delivery and
	// membership revocation failures. Never fatal to the process.
	KindCollaborator Kind = "collaborator"
	// KindStore covers persistence failures. Fatal to the operation, not
	// to the process.
	KindStore Kind = "store"
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func E(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of the first classified error in the chain,
// or "" for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
