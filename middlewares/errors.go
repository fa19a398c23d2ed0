package middlewares

import (
	"errors"
	"fmt"
	"time"
)

// PanicError is a panic recovered while serving a page.
// Host and Path name the public URL, before any subdomain rewrite.
type PanicError struct {
	Value any
	Host  string
	Path  string
	// Stack is nil when stack capture is off.
	Stack []byte
}

func (e *PanicError) Error() string {
	if e.Host == "" {
		return fmt.Sprintf("panic: %v", e.Value)
	}
	return fmt.Sprintf("panic serving %s%s: %v", e.Host, e.Path, e.Value)
}

// TimeoutError reports a page that did not finish within its budget.
type TimeoutError struct {
	Host  string
	Path  string
	Limit time.Duration
}

func (e *TimeoutError) Error() string {
	if e.Host == "" {
		return fmt.Sprintf("page not rendered within %s", e.Limit)
	}
	return fmt.Sprintf("%s%s not rendered within %s", e.Host, e.Path, e.Limit)
}

// AsPanicError returns the *PanicError in err's chain.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	ok := errors.As(err, &pe)
	return pe, ok
}

// AsTimeoutError returns the *TimeoutError in err's chain.
func AsTimeoutError(err error) (*TimeoutError, bool) {
	var te *TimeoutError
	ok := errors.As(err, &te)
	return te, ok
}

// IsPanicError reports whether err wraps a *PanicError.
func IsPanicError(err error) bool {
	_, ok := AsPanicError(err)
	return ok
}

// IsTimeoutError reports whether err wraps a *TimeoutError.
func IsTimeoutError(err error) bool {
	_, ok := AsTimeoutError(err)
	return ok
}
