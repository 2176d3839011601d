package apperr

import "time"

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// RateLimitError marks an over-limit request. It is an expected, recoverable
// condition, not an operational error.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return "too many requests"
}

func NewRateLimit(retryAfter time.Duration) *RateLimitError {
	return &RateLimitError{RetryAfter: retryAfter}
}

// TimeoutError marks a pipeline that lost the race against the request
// deadline. Kept distinct from other internal failures so clients can apply
// a different retry policy.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string {
	if e.Err != nil {
		return "request timeout: " + e.Err.Error()
	}
	return "request timeout"
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

func NewTimeout(err error) *TimeoutError {
	return &TimeoutError{Err: err}
}
