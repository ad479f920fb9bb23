package coro

import (
	"fmt"
	"reflect"
)

var errorType = reflect.TypeFor[error]()

// thrownError materializes the error Throw delivers. exc is an error
// instance, which may not come with a value, or a reflect.Type whose
// values implement error.
func thrownError(exc any, value []any) (error, error) {
	if len(value) > 1 {
		return nil, fmt.Errorf("%w: at most one value, got %d", ErrInvalidThrow, len(value))
	}
	var payload any
	if len(value) == 1 {
		payload = value[0]
	}

	switch e := exc.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil exception", ErrInvalidThrow)
	case error:
		if payload != nil {
			return nil, fmt.Errorf("%w: instance exception may not have a separate value", ErrInvalidThrow)
		}
		return e, nil
	case reflect.Type:
		return constructError(e, payload)
	default:
		return nil, fmt.Errorf("%w: exceptions must be errors or error types, not %T", ErrInvalidThrow, exc)
	}
}

// constructError builds a zero value of t, which must implement error,
// and stores payload in it. For pointer types the pointee is allocated.
// The payload goes into the value itself when it is convertible to its
// kind, otherwise into the first struct field it is assignable to.
func constructError(t reflect.Type, payload any) (error, error) {
	if t.Kind() == reflect.Interface || !t.Implements(errorType) {
		return nil, fmt.Errorf("%w: exceptions must be errors or error types, not %s", ErrInvalidThrow, t)
	}

	var v, target reflect.Value
	if t.Kind() == reflect.Pointer {
		v = reflect.New(t.Elem())
		target = v.Elem()
	} else {
		v = reflect.New(t).Elem()
		target = v
	}

	if payload != nil && !setPayload(target, reflect.ValueOf(payload)) {
		return nil, fmt.Errorf("%w: cannot store %T in %s", ErrInvalidThrow, payload, t)
	}
	return v.Interface().(error), nil
}

func setPayload(target, p reflect.Value) bool {
	if target.Kind() != reflect.Struct {
		if p.Kind() == target.Kind() && p.Type().ConvertibleTo(target.Type()) {
			target.Set(p.Convert(target.Type()))
			return true
		}
		return false
	}
	for i := range target.NumField() {
		f := target.Field(i)
		if f.CanSet() && p.Type().AssignableTo(f.Type()) {
			f.Set(p)
			return true
		}
	}
	return false
}
