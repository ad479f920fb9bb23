// Package coro provides stackful, generator-style coroutines built on
// goroutines and capacity-one rendezvous channels. Each Coroutine owns
// a runner goroutine that executes its body; the body is parked on a
// channel whenever the coroutine is not running, so Yield can be called
// from any function the body calls, not only from the body itself.
//
// A coroutine is created with New (or through a constructor returned by
// Bind) and driven from the outside. Step resumes it with a value and
// returns the next yielded value. Throw delivers an error at the point
// where the body is suspended, and Close delivers ErrCanceled so the
// body can shut down. When the body returns, the driver receives a
// *StopError carrying the return value; errors.Is(err, ErrStop) detects
// the end, and every later Step reports it again.
//
// Inside the body, Yield hands values to the driver and returns what
// the driver sends back, and YieldFrom delegates to another coroutine
// or to a plain sequence, forwarding resumed values, thrown errors and
// the final return value.
//
// Exactly one of the driver and the runner makes progress at any time.
// Only one driver can step a coroutine at once; concurrent or
// re-entrant calls fail with ErrRunning. A panic in the body is
// recovered on the runner, carried over with its stack, and raised again
// in the driver.
package coro
