package coro

import (
	"fmt"
	"reflect"
	"runtime"
)

// Bind turns an ordinary function into a coroutine constructor. Each
// call of the returned function checks args against fn's parameters
// and, if they fit, starts a coroutine whose body calls fn with them.
// A mismatch returns an *ArgumentError and no coroutine is created.
//
// fn may return nothing, a single value, an error, or a value and an
// error. A single result whose type implements error is treated as the
// error, and so is a second result, which must implement error.
func Bind(fn any, opts ...Option) func(args ...any) (*Coroutine, error) {
	fv := reflect.ValueOf(fn)
	name := funcName(fv)

	return func(args ...any) (*Coroutine, error) {
		if fv.Kind() != reflect.Func || fv.IsNil() {
			return nil, &ArgumentError{Func: name, Reason: fmt.Sprintf("%T is not a function", fn)}
		}
		if err := checkResults(fv.Type()); err != "" {
			return nil, &ArgumentError{Func: name, Reason: err}
		}
		in, err := bindArgs(fv.Type(), args)
		if err != "" {
			return nil, &ArgumentError{Func: name, Reason: err}
		}
		return New(func() (any, error) {
			return splitResults(fv.Call(in))
		}, opts...), nil
	}
}

func funcName(fv reflect.Value) string {
	if fv.Kind() == reflect.Func && !fv.IsNil() {
		if f := runtime.FuncForPC(fv.Pointer()); f != nil {
			return f.Name()
		}
	}
	return "coroutine"
}

func checkResults(t reflect.Type) string {
	switch t.NumOut() {
	case 0, 1:
		return ""
	case 2:
		if !t.Out(1).Implements(errorType) {
			return fmt.Sprintf("second result must implement error, not %s", t.Out(1))
		}
		return ""
	default:
		return fmt.Sprintf("too many results (%d)", t.NumOut())
	}
}

func bindArgs(t reflect.Type, args []any) ([]reflect.Value, string) {
	fixed := t.NumIn()
	if t.IsVariadic() {
		fixed--
		if len(args) < fixed {
			return nil, fmt.Sprintf("takes at least %d arguments (%d given)", fixed, len(args))
		}
	} else if len(args) != fixed {
		return nil, fmt.Sprintf("takes %d arguments (%d given)", fixed, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		pt := paramType(t, i, fixed)
		v, ok := argValue(a, pt)
		if !ok {
			return nil, fmt.Sprintf("argument %d: cannot use %T as %s", i, a, pt)
		}
		in[i] = v
	}
	return in, ""
}

func paramType(t reflect.Type, i, fixed int) reflect.Type {
	if i < fixed {
		return t.In(i)
	}
	return t.In(t.NumIn() - 1).Elem()
}

func argValue(a any, pt reflect.Type) (reflect.Value, bool) {
	if a == nil {
		switch pt.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
			return reflect.Zero(pt), true
		}
		return reflect.Value{}, false
	}
	v := reflect.ValueOf(a)
	if !v.Type().AssignableTo(pt) {
		return reflect.Value{}, false
	}
	return v, true
}

func splitResults(out []reflect.Value) (any, error) {
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if out[0].Type().Implements(errorType) {
			return nil, asError(out[0])
		}
		return out[0].Interface(), nil
	default:
		return out[0].Interface(), asError(out[1])
	}
}

func asError(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		if v.IsNil() {
			return nil
		}
	}
	return v.Interface().(error)
}
