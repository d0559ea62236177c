// Package errors provides structured error types and error handling utilities.
package errors

import (
	"errors"
	"fmt"
)

// Wrap creates a new error by wrapping an existing error with additional context.
// This uses fmt.Errorf with %w verb for proper error chain support.
func Wrap(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// New creates a new error using fmt.Errorf.
func New(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join wraps multiple errors into a single error.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Error classes. Callers classify with Is.
var (
	// ErrFilesystem marks a root directory that is missing, unreadable or not a directory.
	ErrFilesystem = errors.New("filesystem error")
	// ErrOutputWrite marks a failure to create or replace the sitemap file.
	ErrOutputWrite = errors.New("output write error")
	// ErrConfiguration marks invalid or missing settings.
	ErrConfiguration = errors.New("configuration error")
	// ErrValidation marks a rejected path or URL.
	ErrValidation = errors.New("validation error")
)

// Filesystem wraps cause as an ErrFilesystem for path.
func Filesystem(path string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrFilesystem, path)
	}
	return fmt.Errorf("%w: %s: %w", ErrFilesystem, path, cause)
}

// OutputWrite wraps cause as an ErrOutputWrite for path.
func OutputWrite(path string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrOutputWrite, path)
	}
	return fmt.Errorf("%w: %s: %w", ErrOutputWrite, path, cause)
}

// Configuration returns an ErrConfiguration with message.
func Configuration(message string) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, message)
}

// ConfigurationWithCause returns an ErrConfiguration wrapping cause.
func ConfigurationWithCause(message string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrConfiguration, message, cause)
}

// Validation returns an ErrValidation with message.
func Validation(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

// ValidationWithDetails returns an ErrValidation with message and details.
func ValidationWithDetails(message, details string) error {
	return fmt.Errorf("%w: %s (%s)", ErrValidation, message, details)
}
