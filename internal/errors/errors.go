// Package errors provides centralized error definitions and error handling
// utilities for the cinder codebase. It defines domain-specific errors,
// semantic error types, error constructors with context wrapping, and error
// classification helpers.
//
// # Error Types
//
// The package provides two categories of errors:
//
// Domain-specific errors represent errors from specific subsystems:
//   - ComponentError: errors related to the component lifecycle tree
//   - WorkerError: errors related to background worker execution
//   - EventError: errors related to event definition and delivery
//
// Sentinel errors represent common error conditions, such as lifecycle
// misuse (ErrAlreadyStarted, ErrWorkerBusy) and bus misuse
// (ErrAlreadySubscribed, ErrNoResponder).
//
// # Usage
//
// Creating errors:
//
//	// Domain-specific error
//	err := errors.NewComponentError("start failed", errors.ErrAlreadyStarted)
//
//	// With context wrapping
//	err := errors.NewWorkerError("spawn rejected", errors.ErrWorkerBusy).WithWorker("discover")
//
// Checking errors:
//
//	// Check for specific sentinel errors
//	if errors.Is(err, errors.ErrAlreadyStarted) { ... }
//
//	// Check for error types
//	var compErr *errors.ComponentError
//	if errors.As(err, &compErr) { ... }
//
//	// Use classification helpers
//	if errors.IsLifecycle(err) { ... }
//
// # Error Policy
//
// Lifecycle misuse (double start, duplicate registration, starting a busy
// worker) is always a typed error returned to the immediate caller. Handler
// failures inside event delivery are logged and isolated by the event
// manager rather than surfaced as errors; see the event package for that
// policy.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Component lifecycle sentinel errors
var (
	// ErrAlreadyInitialized indicates that a component was initialized twice.
	ErrAlreadyInitialized = New("component already initialized")
	// ErrAlreadyStarted indicates that start was called after the child list was bound.
	ErrAlreadyStarted = New("component already started")
	// ErrNotStarted indicates that an operation requires a started component.
	ErrNotStarted = New("component not started")
	// ErrAlreadyAttached indicates that a node was attached to a second parent.
	ErrAlreadyAttached = New("component already attached to a parent")
	// ErrNilComponent indicates that a nil component was supplied.
	ErrNilComponent = New("component is nil")
)

// Worker sentinel errors
var (
	// ErrWorkerBusy indicates that start was called while the worker was not idle.
	ErrWorkerBusy = New("worker is not idle")
	// ErrWorkerPanicked indicates that the worker's run function panicked.
	ErrWorkerPanicked = New("worker run function panicked")
	// ErrNilRunFunc indicates that a worker was created without a run function.
	ErrNilRunFunc = New("worker run function is nil")
	// ErrNilState indicates that a worker was created without a bound state.
	ErrNilState = New("worker state is nil")
)

// Event sentinel errors
var (
	// ErrAlreadySubscribed indicates that a component subscribed to the bus twice.
	ErrAlreadySubscribed = New("component already subscribed")
	// ErrNilSubscriber indicates that a nil subscriber was supplied.
	ErrNilSubscriber = New("subscriber is nil")
	// ErrNoResponder indicates that a query reached no handler willing to answer it.
	ErrNoResponder = New("no responder for query")
	// ErrMultipleResponders indicates that more than one handler answered a query.
	ErrMultipleResponders = New("multiple responders for query")
	// ErrNotQuery indicates that a query operation was attempted on a plain event.
	ErrNotQuery = New("event is not a query")
	// ErrHandlerPanicked indicates that an event handler panicked during delivery.
	ErrHandlerPanicked = New("event handler panicked")
	// ErrHashCollision indicates that two distinct event names hash to the same value.
	ErrHashCollision = New("event name hash collision")
	// ErrDuplicateName indicates that an event name was registered twice.
	ErrDuplicateName = New("event name already registered")
)

// Registry sentinel errors
var (
	// ErrDuplicateID indicates that a component ID was registered twice.
	ErrDuplicateID = New("component ID already registered")
	// ErrUnknownID indicates that no component is registered under the given ID.
	ErrUnknownID = New("unknown component ID")
)

// General sentinel errors
var (
	// ErrCanceled indicates that an operation was canceled.
	ErrCanceled = New("operation canceled")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// CinderError is the base interface for all cinder errors.
// It extends the standard error interface with additional methods for
// error handling and classification.
type CinderError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	// This is used by errors.Is() for error comparison.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity
}

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message  string
	cause    error
	severity Severity
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// ComponentError represents errors related to the component lifecycle tree.
//
// Example:
//
//	err := errors.NewComponentError("start called twice", errors.ErrAlreadyStarted)
//	err = err.WithComponent("device_list")
//	fmt.Println(err) // "component error [component=device_list]: start called twice: component already started"
type ComponentError struct {
	baseError
	Component string
}

// NewComponentError creates a new ComponentError.
func NewComponentError(message string, cause error) *ComponentError {
	return &ComponentError{
		baseError: baseError{
			message:  message,
			cause:    cause,
			severity: SeverityError,
		},
	}
}

// WithComponent adds a component name to the error context.
func (e *ComponentError) WithComponent(name string) *ComponentError {
	e.Component = name
	return e
}

// WithSeverity sets the error severity.
func (e *ComponentError) WithSeverity(s Severity) *ComponentError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *ComponentError) Error() string {
	prefix := "component error"
	if e.Component != "" {
		prefix = fmt.Sprintf("component error [component=%s]", e.Component)
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ComponentError) Is(target error) bool {
	if _, ok := target.(*ComponentError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// WorkerError represents errors related to background worker execution.
//
// Example:
//
//	err := errors.NewWorkerError("start rejected", errors.ErrWorkerBusy)
//	err = err.WithWorker("device_discovery").WithStatus("running")
type WorkerError struct {
	baseError
	Worker string
	Status string
}

// NewWorkerError creates a new WorkerError.
func NewWorkerError(message string, cause error) *WorkerError {
	return &WorkerError{
		baseError: baseError{
			message:  message,
			cause:    cause,
			severity: SeverityError,
		},
	}
}

// WithWorker adds a worker name to the error context.
func (e *WorkerError) WithWorker(name string) *WorkerError {
	e.Worker = name
	return e
}

// WithStatus adds the worker status observed at the time of the error.
func (e *WorkerError) WithStatus(status string) *WorkerError {
	e.Status = status
	return e
}

// WithSeverity sets the error severity.
func (e *WorkerError) WithSeverity(s Severity) *WorkerError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *WorkerError) Error() string {
	var parts []string
	if e.Worker != "" {
		parts = append(parts, fmt.Sprintf("worker=%s", e.Worker))
	}
	if e.Status != "" {
		parts = append(parts, fmt.Sprintf("status=%s", e.Status))
	}

	prefix := "worker error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("worker error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *WorkerError) Is(target error) bool {
	if _, ok := target.(*WorkerError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// EventError represents errors related to event definition and delivery.
//
// Example:
//
//	err := errors.NewEventError("query unanswered", errors.ErrNoResponder)
//	err = err.WithEvent("device.query_selected")
type EventError struct {
	baseError
	Event string
}

// NewEventError creates a new EventError.
func NewEventError(message string, cause error) *EventError {
	return &EventError{
		baseError: baseError{
			message:  message,
			cause:    cause,
			severity: SeverityError,
		},
	}
}

// WithEvent adds an event name to the error context.
func (e *EventError) WithEvent(name string) *EventError {
	e.Event = name
	return e
}

// WithSeverity sets the error severity.
func (e *EventError) WithSeverity(s Severity) *EventError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *EventError) Error() string {
	prefix := "event error"
	if e.Event != "" {
		prefix = fmt.Sprintf("event error [event=%s]", e.Event)
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *EventError) Is(target error) bool {
	if _, ok := target.(*EventError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// IsLifecycle reports whether err is a lifecycle-misuse error: the caller
// invoked an operation from a state that does not permit it.
func IsLifecycle(err error) bool {
	return Is(err, ErrAlreadyInitialized) ||
		Is(err, ErrAlreadyStarted) ||
		Is(err, ErrNotStarted) ||
		Is(err, ErrAlreadyAttached) ||
		Is(err, ErrWorkerBusy) ||
		Is(err, ErrAlreadySubscribed) ||
		Is(err, ErrDuplicateID)
}

// SeverityOf returns the severity of err, or SeverityError if err carries
// no severity of its own.
func SeverityOf(err error) Severity {
	var ce CinderError
	if As(err, &ce) {
		return ce.Severity()
	}
	return SeverityError
}

// Wrap wraps an error with a message using fmt.Errorf and %w.
// Returns nil if err is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted message using fmt.Errorf and %w.
// Returns nil if err is nil.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
