package coro

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/petermattis/goid"
)

// Func is the body of a coroutine. Arguments are captured by the
// closure. A nil error ends the coroutine with a terminal stop carrying
// the returned value.
type Func func() (any, error)

// Coroutine is a generator driven from the outside with Step, Throw
// and Close. Its body runs on a dedicated goroutine that is parked
// whenever the coroutine is not Running, so Yield may be called from
// any function the body calls.
type Coroutine struct {
	core *core
}

// core is the state shared by the driver handle and the runner. The
// runner only ever references core, which lets the handle be finalized
// while the runner is parked.
type core struct {
	id     uuid.UUID
	status atomic.Int32

	in  chan request
	out chan reply

	// mu is held by a driver for a whole handshake.
	mu sync.Mutex

	dropped  chan struct{}
	dropOnce sync.Once

	log *slog.Logger
}

// New creates a coroutine in the Created state. The runner goroutine is
// spawned immediately and waits for the first Step, Throw or Close.
func New(fn Func, opts ...Option) *Coroutine {
	if fn == nil {
		panic("coro: nil Func")
	}
	o := buildOptions(opts)

	c := &core{
		id:      uuid.New(),
		in:      make(chan request, 1),
		out:     make(chan reply, 1),
		dropped: make(chan struct{}),
	}
	c.log = o.logger.With("coroutine", c.id.String())
	caller := goid.Get()
	o.spawn(func() {
		// A spawner that runs f inline would park New forever.
		if goid.Get() == caller {
			go c.run(fn)
			return
		}
		c.run(fn)
	})

	co := &Coroutine{core: c}
	runtime.SetFinalizer(co, func(co *Coroutine) { co.core.drop() })
	return co
}

// ID returns the identifier used for this coroutine in log records.
func (c *Coroutine) ID() uuid.UUID {
	return c.core.id
}

// Status returns the current lifecycle state.
func (c *Coroutine) Status() Status {
	return c.core.Status()
}

func (c *Coroutine) String() string {
	return fmt.Sprintf("coroutine %s (%s)", c.core.id, c.Status())
}

// Step resumes the coroutine with v and blocks until the body yields
// or ends. A yield returns the yielded value and a nil error. When the
// body ends, Step returns the body's error, or a *StopError carrying
// its return value; every later Step returns a *StopError with a nil
// Value.
//
// The first Step must pass nil. A panic in the body is raised again in
// the calling goroutine.
func (c *Coroutine) Step(v any) (any, error) {
	return c.drive(resumeOp(v))
}

// Next is Step(nil).
func (c *Coroutine) Next() (any, error) {
	return c.Step(nil)
}

// Send is Step(v). It makes a Coroutine usable as a Sender source for
// YieldFrom.
func (c *Coroutine) Send(v any) (any, error) {
	return c.Step(v)
}

// Throw delivers an error at the pending suspension point, where Yield
// returns it, and otherwise behaves like Step. exc is either an error,
// in which case no value may be given, or a reflect.Type of an error
// type, which is constructed with the optional value. A Created
// coroutine receives the error before its body starts and ends with it.
func (c *Coroutine) Throw(exc any, value ...any) (any, error) {
	switch c.Status() {
	case Running:
		return nil, ErrRunning
	case Closed:
		return nil, &StopError{}
	}
	err, terr := thrownError(exc, value)
	if terr != nil {
		return nil, terr
	}
	return c.drive(throwOp(err))
}

// Close delivers ErrCanceled into a Created or Suspended coroutine. A
// terminal stop or ErrCanceled itself coming back is the expected answer
// and is swallowed; any other error, including one that wraps
// ErrCanceled, is returned. Closing a Closed coroutine is
// a no-op. A body that yields again after ErrCanceled is left Suspended.
func (c *Coroutine) Close() error {
	switch c.Status() {
	case Running:
		return ErrRunning
	case Closed:
		return nil
	}
	_, err := c.drive(throwOp(ErrCanceled))
	if err == nil || err == ErrCanceled || errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

// All returns an iterator that advances the coroutine with Step(nil)
// until it ends. A terminal stop ends the iteration silently; any other
// error is yielded once, with a nil value, as the final element.
func (c *Coroutine) All() iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		for {
			v, err := c.Step(nil)
			if err != nil {
				if !errors.Is(err, ErrStop) {
					yield(nil, err)
				}
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

// drive keeps the handle reachable for the whole handshake so its
// finalizer cannot release the runner while a request is in flight.
func (c *Coroutine) drive(req request) (any, error) {
	defer runtime.KeepAlive(c)
	return c.core.drive(req)
}

func (c *core) Status() Status {
	return Status(c.status.Load())
}

func (c *core) setStatus(s Status) {
	c.status.Store(int32(s))
}

// drive performs one handshake: one request in, one reply out.
func (c *core) drive(req request) (any, error) {
	switch c.Status() {
	case Running:
		return nil, ErrRunning
	case Closed:
		return nil, &StopError{}
	}

	if !c.mu.TryLock() {
		return nil, ErrRunning
	}
	defer c.mu.Unlock()

	switch c.Status() {
	case Closed:
		return nil, &StopError{}
	case Created:
		if !req.isThrow() && req.value != nil {
			return nil, ErrNonNilStart
		}
	}

	c.setStatus(Running)
	c.in <- req
	rep := <-c.out

	if !rep.finished {
		return rep.value, nil
	}
	if p, ok := isPanic(rep.err); ok {
		panic(p)
	}
	return nil, rep.err
}

func (c *core) drop() {
	c.dropOnce.Do(func() { close(c.dropped) })
}

func (c *core) isDropped() bool {
	select {
	case <-c.dropped:
		return true
	default:
		return false
	}
}
