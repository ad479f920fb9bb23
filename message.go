package coro

// request travels driver -> runner. A non-nil throw makes it a Throw,
// otherwise it is a Resume carrying value.
type request struct {
	value any
	throw error
}

func resumeOp(v any) request { return request{value: v} }

func throwOp(err error) request { return request{throw: err} }

func (r request) isThrow() bool { return r.throw != nil }

// reply travels runner -> driver. A finished reply always carries a
// non-nil err: the terminal stop, the body's error or a panic.
type reply struct {
	value    any
	err      error
	finished bool
}

func yieldedOp(v any) reply { return reply{value: v} }

func finishedOp(err error) reply { return reply{err: err, finished: true} }
