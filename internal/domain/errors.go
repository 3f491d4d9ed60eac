package domain

import "errors"

// Error codes for the two failure classes surfaced by the report pipeline.
const (
	CodeNotFound = "NOT_FOUND"
	CodeUpstream = "UPSTREAM_ERROR"
)

// ErrNotFound is the sentinel matched by errors.Is for unknown identities.
var ErrNotFound = errors.New("user not found")

// Error carries a failure class and a human-readable message.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewNotFoundError reports that the identity does not exist upstream.
func NewNotFoundError(username string) *Error {
	return &Error{Code: CodeNotFound, Message: "User not found: " + username, Err: ErrNotFound}
}

// NewUpstreamError wraps any other upstream failure.
// An empty message falls back to the wrapped error text.
func NewUpstreamError(message string, err error) *Error {
	if message == "" {
		message = "Failed to fetch GitHub data"
		if err != nil {
			message = err.Error()
		}
	}
	return &Error{Code: CodeUpstream, Message: message, Err: err}
}

// IsNotFound reports whether err belongs to the not-found class.
func IsNotFound(err error) bool {
	var derr *Error
	if errors.As(err, &derr) {
		return derr.Code == CodeNotFound
	}
	return errors.Is(err, ErrNotFound)
}
