package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPool makes startup fail when no usable account was
	// configured.
	ErrEmptyPool = errors.New("account pool is empty")

	// ErrAuthExpired signals that the remote endpoint no longer
	// accepts a previously issued session key (HTTP 401).
	ErrAuthExpired = errors.New("session key no longer accepted")

	// ErrAuthPending signals that another login for the same account
	// is already in flight.
	ErrAuthPending = errors.New("login already in flight")
)

// AuthError is a terminal login failure: the remote endpoint rejected
// the credentials, answered with an unexpected shape, or could not be
// reached before the retry budget ran out.
type AuthError struct {
	Handle  string
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("login failed for %s: %s", e.Handle, e.Message)
	}
	return fmt.Sprintf("login failed for %s", e.Handle)
}

func (e *AuthError) Unwrap() error { return e.Err }

// RejectionError is a business-level claim denial: the claim call
// succeeded at the transport level but the remote response carried a
// non-zero status code.
type RejectionError struct {
	Code    string
	Message string
}

func (e *RejectionError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("claim rejected with code %s", e.Code)
}
