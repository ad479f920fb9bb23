package coro

import (
	"errors"
	"fmt"
)

var (
	// ErrCanceled is delivered into a coroutine by Close. A body that
	// receives it from Yield should return; returning it unchanged is
	// treated as an orderly shutdown.
	ErrCanceled = errors.New("coro: coroutine canceled")

	// ErrStop is matched by every terminal stop error. Drivers test
	// for the end of a coroutine with errors.Is(err, ErrStop).
	ErrStop = errors.New("coro: stop iteration")

	// ErrRunning is returned when Step, Throw or Close is called on a
	// coroutine that is already executing, including from its own body.
	ErrRunning = errors.New("coro: coroutine already executing")

	// ErrOutside is returned by Yield and YieldFrom when the calling
	// goroutine is not the runner of a live coroutine.
	ErrOutside = errors.New("coro: not in coroutine")

	// ErrNonNilStart is returned when the first Step carries a value.
	ErrNonNilStart = errors.New("coro: can't send non-nil value to a just-started coroutine")

	// ErrInvalidThrow is returned when Throw gets something that is
	// neither an error nor an error type, or an error plus a value.
	ErrInvalidThrow = errors.New("coro: invalid throw arguments")

	// ErrStopInBody is matched by the RuntimeError a body produces when
	// it returns a terminal stop instead of a plain return value.
	ErrStopInBody = errors.New("coro: coroutine raised stop")

	// ErrGoexit is reported when a body calls runtime.Goexit.
	ErrGoexit = errors.New("coro: coroutine body called runtime.Goexit")

	// ErrArguments is matched by argument binding failures from Bind.
	ErrArguments = errors.New("coro: arguments do not match body signature")

	// ErrNotIterable is matched by NotIterableError.
	ErrNotIterable = errors.New("coro: source is not iterable")

	// ErrNoCapability is matched by CapabilityError.
	ErrNoCapability = errors.New("coro: source lacks capability")
)

// StopError is the terminal stop signal. Value carries the body's
// return value; it is nil for a coroutine that was already closed.
type StopError struct {
	Value any
}

func (e *StopError) Error() string {
	if e.Value == nil {
		return ErrStop.Error()
	}
	return fmt.Sprintf("%s: %v", ErrStop, e.Value)
}

func (e *StopError) Is(target error) bool {
	return target == ErrStop
}

// ReturnValue reports the payload of a terminal stop. ok is false when
// err is not a stop.
func ReturnValue(err error) (value any, ok bool) {
	var stop *StopError
	if errors.As(err, &stop) {
		return stop.Value, true
	}
	return nil, errors.Is(err, ErrStop)
}

// RuntimeError replaces a terminal stop that a body returned itself.
// It exposes the original through Cause rather than Unwrap so that
// errors.Is(err, ErrStop) stays false for it.
type RuntimeError struct {
	cause error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %v", ErrStopInBody, e.cause)
}

func (e *RuntimeError) Is(target error) bool {
	return target == ErrStopInBody
}

// Cause returns the stop error the body returned.
func (e *RuntimeError) Cause() error {
	return e.cause
}

// CapabilityError reports a delegation step the source cannot perform,
// such as resuming a plain sequence with a non-nil value.
type CapabilityError struct {
	Source string
	Method string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("coro: %s has no %s method", e.Source, e.Method)
}

func (e *CapabilityError) Is(target error) bool {
	return target == ErrNoCapability
}

// NotIterableError reports a YieldFrom source of an unsupported type.
type NotIterableError struct {
	Type string
}

func (e *NotIterableError) Error() string {
	return fmt.Sprintf("coro: %s is not iterable", e.Type)
}

func (e *NotIterableError) Is(target error) bool {
	return target == ErrNotIterable
}

// ArgumentError reports a call whose arguments cannot be bound to the
// body's parameters.
type ArgumentError struct {
	Func   string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("coro: %s: %s", e.Func, e.Reason)
}

func (e *ArgumentError) Is(target error) bool {
	return target == ErrArguments
}

// stopOutcome turns the way a body ended into the error carried by the
// finished reply.
func stopOutcome(value any, err error) error {
	switch {
	case err == nil:
		return &StopError{Value: value}
	case errors.Is(err, ErrStop):
		return &RuntimeError{cause: err}
	default:
		return err
	}
}

// stopValue splits an error returned by a delegation source into its
// return value, when it is a stop, or the error itself.
func stopValue(err error) (any, error) {
	if v, ok := ReturnValue(err); ok {
		return v, nil
	}
	return nil, err
}
