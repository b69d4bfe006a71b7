// Package errors provides custom error types for the seedsync system.
// These errors enable programmatic error checking with errors.Is / errors.As
// and let the CLI map failures to exit codes without string matching.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is, As and Join are re-exported so callers only need one errors import.
var (
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Common sentinel errors for the seedsync system
var (
	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrConnection indicates that the project database could not be reached
	ErrConnection = errors.New("database connection failed")

	// ErrQuery indicates that the project query was rejected or failed mid-read
	ErrQuery = errors.New("database query failed")

	// ErrFilesystem indicates that the managed root directory could not be listed
	ErrFilesystem = errors.New("filesystem error")

	// ErrCopy indicates that a seed copy into a single target failed
	ErrCopy = errors.New("seed copy failed")

	// ErrPartialFailure indicates that some targets could not be provisioned
	ErrPartialFailure = errors.New("partial provisioning failure")

	// ErrLocked indicates that another run holds the lock for the same root
	ErrLocked = errors.New("another run is in progress")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ConnectionError is returned when the project database cannot be reached.
type ConnectionError struct {
	Driver string // "postgres", "sqlite"
	Target string // redacted DSN or file path
	Err    error
}

// Error implements the error interface
func (e *ConnectionError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("cannot connect to %s database %s: %v", e.Driver, e.Target, e.Err)
	}
	return fmt.Sprintf("cannot connect to %s database: %v", e.Driver, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConnectionError) Is(target error) bool {
	return target == ErrConnection
}

// NewConnectionError creates a new ConnectionError
func NewConnectionError(driver, target string, err error) *ConnectionError {
	return &ConnectionError{Driver: driver, Target: target, Err: err}
}

// QueryError is returned when the project query executes but the driver reports a failure.
type QueryError struct {
	Stage    string // "query", "scan", "rows"
	SQLState string // Postgres SQLSTATE code when known
	Err      error
}

// Error implements the error interface
func (e *QueryError) Error() string {
	if e.SQLState != "" {
		return fmt.Sprintf("project query failed during %s (SQLSTATE %s): %v", e.Stage, e.SQLState, e.Err)
	}
	return fmt.Sprintf("project query failed during %s: %v", e.Stage, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *QueryError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *QueryError) Is(target error) bool {
	return target == ErrQuery
}

// NewQueryError creates a new QueryError
func NewQueryError(stage, sqlState string, err error) *QueryError {
	return &QueryError{Stage: stage, SQLState: sqlState, Err: err}
}

// FilesystemError is returned when the managed root directory cannot be listed.
type FilesystemError struct {
	Operation string // "list", "stat"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *FilesystemError) Error() string {
	return fmt.Sprintf("filesystem error during %s of %s: %v", e.Operation, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *FilesystemError) Is(target error) bool {
	return target == ErrFilesystem
}

// NewFilesystemError creates a new FilesystemError
func NewFilesystemError(operation, path string, err error) *FilesystemError {
	return &FilesystemError{Operation: operation, Path: path, Err: err}
}

// CopyError records why a single target directory could not be provisioned.
type CopyError struct {
	Target string // directory being created
	Path   string // entry that failed, may equal Target
	Err    error
}

// Error implements the error interface
func (e *CopyError) Error() string {
	if e.Path != "" && e.Path != e.Target {
		return fmt.Sprintf("provision %s: %s: %v", e.Target, e.Path, e.Err)
	}
	return fmt.Sprintf("provision %s: %v", e.Target, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *CopyError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *CopyError) Is(target error) bool {
	return target == ErrCopy
}

// NewCopyError creates a new CopyError
func NewCopyError(target, path string, err error) *CopyError {
	return &CopyError{Target: target, Path: path, Err: err}
}

// ProvisionError summarizes a run in which resolution succeeded but some
// targets were not provisioned.
type ProvisionError struct {
	Failed  []string
	Skipped int
}

// Error implements the error interface
func (e *ProvisionError) Error() string {
	msg := fmt.Sprintf("%d director", len(e.Failed))
	if len(e.Failed) == 1 {
		msg += "y"
	} else {
		msg += "ies"
	}
	msg += " could not be provisioned: " + strings.Join(e.Failed, ", ")
	if e.Skipped > 0 {
		msg += fmt.Sprintf(" (%d skipped)", e.Skipped)
	}
	return msg
}

// Is implements errors.Is support
func (e *ProvisionError) Is(target error) bool {
	return target == ErrPartialFailure
}

// Helper functions for error checking

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConnection checks if an error is a database connection error
func IsConnection(err error) bool {
	return errors.Is(err, ErrConnection)
}

// IsQuery checks if an error is a database query error
func IsQuery(err error) bool {
	return errors.Is(err, ErrQuery)
}

// IsFilesystem checks if an error is a root listing error
func IsFilesystem(err error) bool {
	return errors.Is(err, ErrFilesystem)
}

// IsPartialFailure checks if a run finished with unprovisioned targets
func IsPartialFailure(err error) bool {
	return errors.Is(err, ErrPartialFailure)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}
