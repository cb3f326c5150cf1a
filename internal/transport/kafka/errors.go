package kafka

import "errors"

type skipError struct{ err error }

func (e *skipError) Error() string { return "skip message: " + e.err.Error() }

func (e *skipError) Unwrap() error { return e.err }

// Skip tags a handler error after which the consumer commits the message
// instead of retrying it. Skip(nil) is nil.
func Skip(err error) error {
	if err == nil {
		return nil
	}
	return &skipError{err: err}
}

// IsSkip reports whether err or anything it wraps came from Skip.
func IsSkip(err error) bool {
	var s *skipError
	return errors.As(err, &s)
}
