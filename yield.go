package coro

import "slices"

// Yield suspends the calling coroutine and hands a value to the driver.
// With no values the driver receives nil, with one it receives that
// value, and with several it receives them as a []any.
//
// Yield returns the value passed to the next Step. If the driver calls
// Throw instead, Yield returns the thrown error; Close shows up as
// ErrCanceled. Yield may be called from any function on the body's
// goroutine and fails with ErrOutside everywhere else.
func Yield(values ...any) (any, error) {
	c, err := current()
	if err != nil {
		return nil, err
	}

	req := c.suspend(pack(values))
	if req.isThrow() {
		return nil, req.throw
	}
	return req.value, nil
}

// YieldFrom delegates to src until it ends and returns its return
// value: the Value of the *StopError a coroutine ends with, or nil for
// a plain sequence. Every item src produces is yielded to the driver.
// Resumed values go to src's Send and thrown errors to its Throw. A
// source without Throw does not see thrown errors; YieldFrom returns
// them instead. A non-nil resume to a source without Send fails with a
// *CapabilityError.
//
// src is an Iterator (optionally a Sender and Thrower, as *Coroutine
// is), a []any, or an iter.Seq[any].
func YieldFrom(src any) (any, error) {
	c, err := current()
	if err != nil {
		return nil, err
	}

	s, err := newSource(src)
	if err != nil {
		return nil, err
	}
	if s.release != nil {
		defer s.release()
	}

	v, err := s.next.Next()
	if err != nil {
		return stopValue(err)
	}
	for {
		req := c.suspend(v)
		if req.isThrow() && s.throw == nil {
			return nil, req.throw
		}
		v, err = s.advance(req)
		if err != nil {
			return stopValue(err)
		}
	}
}

func pack(values []any) any {
	switch len(values) {
	case 0:
		return nil
	case 1:
		return values[0]
	default:
		return slices.Clone(values)
	}
}
