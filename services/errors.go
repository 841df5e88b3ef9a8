package services

import (
	"context"
	"errors"
	"fmt"
)

// ValidationError is a rejected request; no collaborator call was made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// CollaboratorError is a failed, timed out or unparseable model call.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the call was cut by the request deadline.
func (e *CollaboratorError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

func newCollaboratorError(op string, err error) *CollaboratorError {
	var collabErr *CollaboratorError
	if errors.As(err, &collabErr) {
		return collabErr
	}
	return &CollaboratorError{Op: op, Err: err}
}

type ConfigurationError struct {
	Key     string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid AI configuration %s: %s", e.Key, e.Message)
}

func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsCollaboratorError(err error) bool {
	var target *CollaboratorError
	return errors.As(err, &target)
}
