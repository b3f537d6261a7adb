package models

import "errors"

// Result is the outcome of a single service call: either data or a failure
// message, never both.
type Result[T any] struct {
	ok      bool
	data    T
	message string
}

// Ok returns a successful Result carrying data.
func Ok[T any](data T) Result[T] {
	return Result[T]{ok: true, data: data}
}

// Fail returns a failed Result carrying a message.
func Fail[T any](message string) Result[T] {
	return Result[T]{message: message}
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool { return r.ok }

// Message returns the failure message, empty on success.
func (r Result[T]) Message() string { return r.message }

// Unwrap returns the data on success and an error built from the message
// otherwise.
func (r Result[T]) Unwrap() (T, error) {
	if !r.ok {
		var zero T
		return zero, errors.New(r.message)
	}
	return r.data, nil
}
