package coro

import "runtime"

// run is the runner goroutine. It registers itself, waits for the
// first request and turns however the body ends into exactly one
// finished reply.
func (c *core) run(fn Func) {
	gid := register(c)
	c.log.Debug("runner started")

	var (
		ended bool
		err   error
	)
	defer func() {
		unregister(gid)
		if !ended {
			if p := recover(); p != nil {
				err = newPanicError(c.id, p)
			} else if c.isDropped() {
				c.log.Debug("runner released after handle was dropped")
				return
			} else {
				err = ErrGoexit
			}
		}
		c.finish(err)
	}()

	req := c.receive()
	if req.isThrow() {
		err, ended = req.throw, true
		return
	}

	v, berr := fn()
	err, ended = stopOutcome(v, berr), true
}

// receive waits for the next request. If the driver handle has been
// garbage collected the runner exits instead of waiting forever.
func (c *core) receive() request {
	select {
	case req := <-c.in:
		return req
	default:
	}
	select {
	case req := <-c.in:
		return req
	case <-c.dropped:
	}
	runtime.Goexit()
	return request{}
}

// suspend hands v to the driver and waits for the next request.
func (c *core) suspend(v any) request {
	c.setStatus(Suspended)
	c.out <- yieldedOp(v)
	req := c.receive()
	c.setStatus(Running)
	return req
}

// finish marks the coroutine Closed before the final reply so that a
// driver never observes Suspended after the end.
func (c *core) finish(err error) {
	c.setStatus(Closed)
	c.log.Debug("runner finished")
	select {
	case c.out <- finishedOp(err):
	case <-c.dropped:
	}
}
