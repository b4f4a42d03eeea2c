package runtime

import (
	"errors"
	"fmt"
)

// ErrorKind classifies runtime failures surfaced to the host.
type ErrorKind string

const (
	ErrUndefinedName        ErrorKind = "UndefinedName"
	ErrConstAssignment      ErrorKind = "ConstAssignment"
	ErrDuplicateConstant    ErrorKind = "DuplicateConstant"
	ErrUnsupportedOperation ErrorKind = "UnsupportedOperation"
	ErrWrongArgumentCount   ErrorKind = "WrongArgumentCount"
	ErrUnknownExport        ErrorKind = "UnknownExport"
	ErrModuleNotFound       ErrorKind = "ModuleNotFound"
	ErrVisibilityViolation  ErrorKind = "VisibilityViolation"
	ErrNotCallable          ErrorKind = "NotCallable"
	ErrIndexOutOfRange      ErrorKind = "IndexOutOfRange"
	ErrKeyNotFound          ErrorKind = "KeyNotFound"
	ErrDivisionByZero       ErrorKind = "DivisionByZero"
	ErrThrown               ErrorKind = "Thrown"
	ErrImportCycle          ErrorKind = "ImportCycle"
	ErrFluxCycle            ErrorKind = "FluxCycle"
	ErrDuplicateMember      ErrorKind = "DuplicateMember"
	ErrCallDepthExceeded    ErrorKind = "CallDepthExceeded"
)

// RuntimeError is the single error type produced by evaluation.
type RuntimeError struct {
	Kind    ErrorKind
	Message string
	// Value carries the payload of a script-level throw.
	Value Value
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError builds a RuntimeError with a formatted message.
func NewError(kind ErrorKind, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AsRuntimeError extracts a RuntimeError from err.
func AsRuntimeError(err error) (*RuntimeError, bool) {
	var rerr *RuntimeError
	if errors.As(err, &rerr) {
		return rerr, true
	}
	return nil, false
}

// IsKind reports whether err is a RuntimeError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	rerr, ok := AsRuntimeError(err)
	return ok && rerr.Kind == kind
}

// Convenience constructors for the common kinds.

func UndefinedName(name string) *RuntimeError {
	return NewError(ErrUndefinedName, "undefined name '%s'", name)
}

func ConstAssignment(name string) *RuntimeError {
	return NewError(ErrConstAssignment, "cannot assign to constant '%s'", name)
}

func UnsupportedOperation(op string, left, right Value) *RuntimeError {
	if right == nil {
		return NewError(ErrUnsupportedOperation, "unsupported operand type for '%s': %s", op, TypeName(left))
	}
	return NewError(ErrUnsupportedOperation, "unsupported operand types for '%s': %s and %s", op, TypeName(left), TypeName(right))
}

func WrongArgumentCount(name string, expected, got int) *RuntimeError {
	return NewError(ErrWrongArgumentCount, "%s expects at most %d arguments, got %d", name, expected, got)
}

func NotCallable(v Value) *RuntimeError {
	return NewError(ErrNotCallable, "value of type %s is not callable", TypeName(v))
}
