// Package ferrors implements FilterX's error taxonomy (spec.md §7): a
// small set of error kinds (not Go types) distinguishing evaluation,
// resource, and configuration errors, carried as structured, located,
// context-bearing values. Modeled on the fluent, non-mutating builder
// contract of tuliorib-xgx-error/error.go and the source-located
// formatting of CWBudde-go-dws/internal/errors.
package ferrors

import (
	"errors"
	"fmt"
	"strings"
)

// Code classifies an error into one of spec.md §7's kinds. Cancellation
// (DROP/DONE) is deliberately not a Code here — spec.md is explicit that
// it "is not an error" — it is modeled by evalctx.Modifier instead.
type Code string

const (
	// CodeEval covers bad operands, missing keys, type mismatches — raised
	// from eval().
	CodeEval Code = "eval"
	// CodeResource covers scratch allocation and regex-compile failures.
	CodeResource Code = "resource"
	// CodeConfig covers errors raised at init(), never at eval().
	CodeConfig Code = "config"
)

// Error is FilterX's error value: a Code, a concise message, optional
// source location, optional key/value context fields, and an optional
// wrapped cause, interoperable with errors.Is/As/Unwrap.
type Error struct {
	code    Code
	message string
	line    int
	column  int
	fields  []field
	cause   error
}

type field struct {
	key string
	val any
}

// New creates a bare error of the given kind.
func New(code Code, format string, args ...any) *Error {
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

// Evalf is a convenience constructor for the common case.
func Evalf(format string, args ...any) *Error {
	return New(CodeEval, format, args...)
}

// At returns a copy of e located at line:column, for error-stack frames
// attached during eval (spec.md §7 "pushes a frame onto the context's
// error stack with location, message").
func (e *Error) At(line, column int) *Error {
	cp := *e
	cp.line, cp.column = line, column
	return &cp
}

// Ctx returns a copy of e with an extra key/value context field appended,
// matching xgx-error's fluent non-mutating .With() contract.
func (e *Error) Ctx(key string, val any) *Error {
	cp := *e
	cp.fields = append(append([]field(nil), e.fields...), field{key, val})
	return &cp
}

// Wrap returns a copy of e with cause recorded as its Unwrap() target.
func (e *Error) Wrap(cause error) *Error {
	cp := *e
	cp.cause = cause
	return &cp
}

// Code reports e's classification.
func (e *Error) Code() Code { return e.code }

// Location reports the source position attached via At, or (0, 0) if
// none was attached.
func (e *Error) Location() (line, column int) { return e.line, e.column }

func (e *Error) Error() string {
	var sb strings.Builder
	if e.line > 0 {
		fmt.Fprintf(&sb, "%d:%d: ", e.line, e.column)
	}
	sb.WriteString(e.message)
	for _, f := range e.fields {
		fmt.Fprintf(&sb, " %s=%v", f.key, f.val)
	}
	if e.cause != nil {
		fmt.Fprintf(&sb, ": %s", e.cause.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error { return e.cause }

// Is supports errors.Is(err, ferrors.New(ferrors.CodeEval, ""))-style
// matching: it compares classification codes when the target is itself
// an *Error, ignoring message, location and fields.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.code == other.code
	}
	return false
}

// IsCode reports whether err is a *ferrors.Error of the given Code.
func IsCode(err error, code Code) bool {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.code == code
	}
	return false
}
