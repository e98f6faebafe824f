package errs

import (
	"errors"
	"fmt"
)

// Common sentinel errors for cross-layer signaling.
var (
	ErrNotFound = errors.New("not_found")
	ErrInvalid  = errors.New("invalid")
)

// NotFoundError names the resource type and id that could not be resolved.
// It matches ErrNotFound under errors.Is.
type NotFoundError struct {
	Resource string
	ID       int64
}

// NotFound builds a *NotFoundError for the given resource type and id.
func NotFound(resource string, id int64) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Resource '%s' with id '%d' could not be found.", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError carries per-field messages for rejected input.
// It matches ErrInvalid under errors.Is.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

// Invalid builds a *ValidationError with a single field message.
func Invalid(msg, field, fieldMsg string) *ValidationError {
	return &ValidationError{Message: msg, Fields: map[string][]string{field: {fieldMsg}}}
}

// Add appends a message for field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// HasFields reports whether any field message was recorded.
func (e *ValidationError) HasFields() bool { return len(e.Fields) > 0 }

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }
