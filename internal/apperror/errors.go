package apperror

import (
	"errors"
	"fmt"
)

// NotFoundError signals that a referenced entity id does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func NewNotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// ConflictError signals an operation that is invalid for the entity's
// current state (double init, post after done, post before init).
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

func NewConflict(reason string) *ConflictError {
	return &ConflictError{Reason: reason}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}
