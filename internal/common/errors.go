package common

import "errors"

var (
	// ErrInvalidToken reports a token that cannot be parsed as a JWT.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired reports a token whose exp claim is in the past.
	ErrTokenExpired = errors.New("token expired")
)
