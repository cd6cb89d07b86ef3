package gomap

import "errors"

// Result is the outcome of one conversion: the value built, complete or
// partial, and the field errors met on the way in field order.
type Result[T any] struct {
	Value  T
	Errors []*FieldError
}

// OK reports whether the conversion had no field errors.
func (r *Result[T]) OK() bool {
	return len(r.Errors) == 0
}

// Err joins the field errors, or returns nil.
func (r *Result[T]) Err() error {
	if r.OK() {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}
