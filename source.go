package coro

import (
	"fmt"
	"iter"

	"golang.org/x/exp/constraints"
)

// Iterator produces items for YieldFrom. Next returns an error matching
// ErrStop once the source is exhausted; a *StopError may carry a
// return value.
type Iterator interface {
	Next() (any, error)
}

// Sender is implemented by sources that accept resumed values.
type Sender interface {
	Send(v any) (any, error)
}

// Thrower is implemented by sources that accept thrown errors, with
// the same arguments as (*Coroutine).Throw.
type Thrower interface {
	Throw(exc any, value ...any) (any, error)
}

// source is the capability set YieldFrom works against. send and throw
// are nil when the underlying value does not support them.
type source struct {
	name    string
	next    Iterator
	send    Sender
	throw   Thrower
	release func()
}

func newSource(src any) (source, error) {
	switch s := src.(type) {
	case Iterator:
		so := source{name: fmt.Sprintf("%T", src), next: s}
		so.send, _ = src.(Sender)
		so.throw, _ = src.(Thrower)
		return so, nil
	case []any:
		return source{name: "[]any", next: Slice(s...)}, nil
	case iter.Seq[any]:
		it, stop := Seq(s)
		return source{name: "iter.Seq[any]", next: it, release: stop}, nil
	case func(func(any) bool):
		it, stop := Seq(s)
		return source{name: "iter.Seq[any]", next: it, release: stop}, nil
	}
	return source{}, &NotIterableError{Type: fmt.Sprintf("%T", src)}
}

// advance forwards one driver request into the source.
func (s source) advance(req request) (any, error) {
	switch {
	case req.isThrow():
		return s.throw.Throw(req.throw)
	case req.value == nil:
		return s.next.Next()
	case s.send == nil:
		return nil, &CapabilityError{Source: s.name, Method: "Send"}
	default:
		return s.send.Send(req.value)
	}
}

type sliceIterator struct {
	items []any
}

// Slice returns an Iterator over items. It supports neither Send nor
// Throw.
func Slice(items ...any) Iterator {
	return &sliceIterator{items: items}
}

func (it *sliceIterator) Next() (any, error) {
	if len(it.items) == 0 {
		return nil, &StopError{}
	}
	v := it.items[0]
	it.items = it.items[1:]
	return v, nil
}

type rangeIterator[T constraints.Integer] struct {
	next, stop T
}

// Range returns an Iterator over the half-open interval [start, stop).
func Range[T constraints.Integer](start, stop T) Iterator {
	return &rangeIterator[T]{next: start, stop: stop}
}

func (it *rangeIterator[T]) Next() (any, error) {
	if it.next >= it.stop {
		return nil, &StopError{}
	}
	v := it.next
	it.next++
	return v, nil
}

type seqIterator struct {
	next func() (any, bool)
}

// Seq adapts a push iterator with iter.Pull. The returned stop function
// must be called if the Iterator is abandoned before it is exhausted.
func Seq(seq iter.Seq[any]) (Iterator, func()) {
	next, stop := iter.Pull(seq)
	return &seqIterator{next: next}, stop
}

func (it *seqIterator) Next() (any, error) {
	v, ok := it.next()
	if !ok {
		return nil, &StopError{}
	}
	return v, nil
}
