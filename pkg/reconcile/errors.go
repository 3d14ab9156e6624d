package reconcile

import (
	"errors"
	"fmt"
)

// ErrorClass classifies a reconciliation failure. All classes abort the
// invocation before or instead of writing; the on-disk file is never
// touched by a failed invocation.
type ErrorClass string

const (
	// ErrorClassNotFound indicates the config file is absent from the
	// home directory.
	ErrorClassNotFound ErrorClass = "not_found"

	// ErrorClassParse indicates the config file is not well-formed XML.
	ErrorClassParse ErrorClass = "parse"

	// ErrorClassSchema indicates the document root tag does not match
	// the one the requested mutator requires.
	ErrorClassSchema ErrorClass = "schema"

	// ErrorClassInvalid indicates the resource's parameters failed
	// validation before a mutator could be built.
	ErrorClassInvalid ErrorClass = "invalid"

	// ErrorClassIO indicates serialization or persistence failed.
	ErrorClassIO ErrorClass = "io"
)

// ReconcileError is a classified reconciliation failure with context.
//
//nolint:revive // named to distinguish from standard errors
type ReconcileError struct {
	// Class is the failure classification.
	Class ErrorClass

	// Message is the human-readable error message.
	Message string

	// Resource is the resource name being reconciled, if known.
	Resource string

	// Conffile is the logical config file involved, if known.
	Conffile string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ReconcileError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Class, e.Message)
	if e.Resource != "" {
		msg += fmt.Sprintf(" (resource=%s", e.Resource)
		if e.Conffile != "" {
			msg += fmt.Sprintf(", conffile=%s", e.Conffile)
		}
		msg += ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error for error chain inspection.
func (e *ReconcileError) Unwrap() error {
	return e.Err
}

// Is implements error equality checking for errors.Is.
func (e *ReconcileError) Is(target error) bool {
	t, ok := target.(*ReconcileError)
	if !ok {
		return false
	}
	return e.Class == t.Class
}

// NewNotFoundError creates a new not_found error.
func NewNotFoundError(message string, err error) *ReconcileError {
	return &ReconcileError{Class: ErrorClassNotFound, Message: message, Err: err}
}

// NewParseError creates a new parse error.
func NewParseError(message string, err error) *ReconcileError {
	return &ReconcileError{Class: ErrorClassParse, Message: message, Err: err}
}

// NewSchemaError creates a new schema mismatch error.
func NewSchemaError(message string, err error) *ReconcileError {
	return &ReconcileError{Class: ErrorClassSchema, Message: message, Err: err}
}

// NewInvalidError creates a new parameter validation error.
func NewInvalidError(message string, err error) *ReconcileError {
	return &ReconcileError{Class: ErrorClassInvalid, Message: message, Err: err}
}

// NewIOError creates a new io error.
func NewIOError(message string, err error) *ReconcileError {
	return &ReconcileError{Class: ErrorClassIO, Message: message, Err: err}
}

// WithResource adds resource context to an error.
func (e *ReconcileError) WithResource(name string) *ReconcileError {
	e.Resource = name
	return e
}

// WithConffile adds config file context to an error.
func (e *ReconcileError) WithConffile(conffile string) *ReconcileError {
	e.Conffile = conffile
	return e
}

// classOf returns the class of err, or empty when err carries none.
func classOf(err error) ErrorClass {
	var e *ReconcileError
	if errors.As(err, &e) {
		return e.Class
	}
	return ""
}

// IsNotFound returns true if the error is classified as not_found.
func IsNotFound(err error) bool {
	return classOf(err) == ErrorClassNotFound
}

// IsParse returns true if the error is classified as a parse failure.
func IsParse(err error) bool {
	return classOf(err) == ErrorClassParse
}

// IsSchema returns true if the error is classified as a schema mismatch.
func IsSchema(err error) bool {
	return classOf(err) == ErrorClassSchema
}

// IsInvalid returns true if the error is classified as invalid params.
func IsInvalid(err error) bool {
	return classOf(err) == ErrorClassInvalid
}

// IsIO returns true if the error is classified as an io failure.
func IsIO(err error) bool {
	return classOf(err) == ErrorClassIO
}
