package coro

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/google/uuid"
)

// panicError carries a panic recovered on a runner goroutine over to
// the driver, which panics with it again.
type panicError struct {
	value any
	stack []byte
	coro  uuid.UUID
}

func (p *panicError) Error() string {
	return fmt.Sprintf("%v", p.value)
}

// Value returns the value the body panicked with.
func (p *panicError) Value() any {
	return p.value
}

func (p *panicError) ErrorWithStack() string {
	return fmt.Sprintf("%v\n\ncoroutine %s:\n%s", p.value, p.coro, p.stack)
}

func (p *panicError) Unwrap() error {
	err, ok := p.value.(error)
	if !ok {
		return nil
	}
	return err
}

// DebugString renders the whole chain, including the runner stacks of
// nested coroutines that panicked through each other.
func (p *panicError) DebugString() string {
	var sb strings.Builder
	seen := make(map[error]bool)

	var walk func(error)
	walk = func(e error) {
		if e == nil || seen[e] {
			return
		}
		seen[e] = true

		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		if pe, ok := e.(*panicError); ok {
			sb.WriteString(pe.ErrorWithStack())
		} else {
			sb.WriteString(e.Error())
		}

		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, ue := range u.Unwrap() {
				walk(ue)
			}
		case interface{ Cause() error }:
			walk(u.Cause())
		default:
			walk(errors.Unwrap(e))
		}
	}

	walk(p)
	return sb.String()
}

func newPanicError(id uuid.UUID, v any) *panicError {
	return &panicError{
		value: v,
		stack: debug.Stack(),
		coro:  id,
	}
}

func isPanic(err error) (*panicError, bool) {
	p, ok := err.(*panicError)
	return p, ok
}
