package errs

import (
	"fmt"
	"strings"
)

// ConversionError describes a failed value or array conversion.
//
// Err is one of the conversion sentinels (ErrOverflow, ErrLossyCast,
// ErrTypeError, ErrIncompatibleType, ErrNull) so that errors.Is keeps working
// on wrapped values.
type ConversionError struct {
	Err     error
	Value   string // offending value, formatted; empty when not applicable
	From    string
	To      string
	Message string
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Err.Error())
	if e.Value != "" {
		sb.WriteString(": value ")
		sb.WriteString(e.Value)
	}
	switch {
	case e.From != "" && e.To != "":
		fmt.Fprintf(&sb, " (%s -> %s)", e.From, e.To)
	case e.To != "":
		fmt.Fprintf(&sb, " (to %s)", e.To)
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}

	return sb.String()
}

// Unwrap returns the sentinel error.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Overflow builds an ErrOverflow conversion error for value v and target type to.
func Overflow(v any, to string) *ConversionError {
	return &ConversionError{Err: ErrOverflow, Value: fmt.Sprint(v), To: to}
}

// LossyCast builds an ErrLossyCast conversion error.
func LossyCast(v any, from, to string) *ConversionError {
	return &ConversionError{Err: ErrLossyCast, Value: fmt.Sprint(v), From: from, To: to}
}

// TypeError builds an ErrTypeError conversion error.
func TypeError(from, to, msg string) *ConversionError {
	return &ConversionError{Err: ErrTypeError, From: from, To: to, Message: msg}
}

// Incompatible builds an ErrIncompatibleType conversion error.
func Incompatible(from, to, msg string) *ConversionError {
	return &ConversionError{Err: ErrIncompatibleType, From: from, To: to, Message: msg}
}
