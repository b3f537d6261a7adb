package client

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrAuthFailed   = errors.New("auth failed")
	ErrFetchFailed  = errors.New("fetch failed")
	ErrCreateFailed = errors.New("create failed")
	ErrUpdateFailed = errors.New("update failed")
	ErrDeleteFailed = errors.New("delete failed")
	ErrNotFound     = errors.New("not found")
	ErrNetwork      = errors.New("network error")
)

// Error is a classified failure of a single call. Its text is meant for the user.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

// Is matches the error kind only: a NotFound error never matches ErrUpdateFailed.
func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func networkError(fallback string, err error) *Error {
	return &Error{Kind: ErrNetwork, Message: fmt.Sprintf("%s: %v", fallback, err), Err: err}
}

// Message extracts the user-facing text of err, or "" for nil.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Message
	}
	return err.Error()
}
