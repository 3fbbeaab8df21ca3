// Package apierr defines the error taxonomy used for outbound API calls.
// Failures are sorted into three kinds so retry and rate-limit policy can be
// expressed without knowledge of the underlying SDK or transport:
//
//   - Validation: the caller supplied bad input. Never retried.
//   - API: the upstream call failed for a recoverable reason. Retried.
//   - RateLimit: the upstream explicitly signaled throttling. Retried,
//     treated as a subtype of API.
//
// Errors that fit none of these kinds are never converted; they propagate
// unchanged so that only explicitly-understood failure modes are retried.
package apierr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
)

// Kind identifies a failure category.
type Kind int

const (
	// KindUnknown marks an error outside the taxonomy.
	KindUnknown Kind = iota
	// KindValidation marks a caller precondition violation.
	KindValidation
	// KindAPI marks a recoverable upstream failure.
	KindAPI
	// KindRateLimit marks an explicit throttling signal from upstream.
	KindRateLimit
)

// String returns a stable name for the kind, used in logs and metrics labels.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAPI:
		return "api"
	case KindRateLimit:
		return "rate_limit"
	default:
		return "unknown"
	}
}

// Sentinel errors for use with errors.Is. A RateLimit error matches both
// ErrRateLimit and ErrAPI, reflecting the subtype relationship.
var (
	ErrValidation = errors.New("validation error")
	ErrAPI        = errors.New("api error")
	ErrRateLimit  = errors.New("rate limit exceeded")
)

// Error is a classified failure. Message carries the caller-facing
// diagnostic; Err is the underlying cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether the error matches one of the taxonomy sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrRateLimit:
		return e.Kind == KindRateLimit
	case ErrAPI:
		return e.Kind == KindAPI || e.Kind == KindRateLimit
	}
	return false
}

// Validation creates a non-retryable caller error.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// API creates a retryable upstream error wrapping cause.
func API(msg string, cause error) *Error {
	return &Error{Kind: KindAPI, Message: msg, Err: cause}
}

// RateLimit creates a retryable throttling error wrapping cause.
func RateLimit(msg string, cause error) *Error {
	return &Error{Kind: KindRateLimit, Message: msg, Err: cause}
}

// FromHTTPStatus maps an HTTP response status to a taxonomy error.
// 429 becomes RateLimit; everything else handed to this function is
// treated as a generic API failure.
func FromHTTPStatus(status int, msg string) *Error {
	if status == http.StatusTooManyRequests {
		return RateLimit(fmt.Sprintf("HTTP %d: %s", status, msg), nil)
	}
	return API(fmt.Sprintf("HTTP %d: %s", status, msg), nil)
}

// Classify maps an error to its kind. The mapping is a pure function with
// no side effects: classifying the same error twice yields the same kind.
//
// Already-classified errors keep their kind. Transport-level failures
// (timeouts, refused or reset connections, unreachable networks) and
// malformed JSON responses classify as API. Context cancellation and
// anything unrecognized classify as Unknown and are never retried.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindUnknown
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindAPI
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ETIMEDOUT) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return KindAPI
	}

	// Malformed upstream response bodies.
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return KindAPI
	}

	return KindUnknown
}

// IsRetryable reports whether re-attempting the failed operation has a
// reasonable chance of succeeding. API and RateLimit failures are
// retryable; Validation and unrecognized failures are not.
func IsRetryable(err error) bool {
	switch Classify(err) {
	case KindAPI, KindRateLimit:
		return true
	default:
		return false
	}
}

// Require checks a caller precondition. It returns nil when cond is true
// and a Validation error carrying msg when it is false. Use it to reject
// malformed request parameters before any network call is attempted:
//
//	if err := apierr.Require(len(keywords) > 0, "at least one keyword is required"); err != nil {
//	    return err
//	}
func Require(cond bool, msg string) error {
	if cond {
		return nil
	}
	return Validation(msg)
}
