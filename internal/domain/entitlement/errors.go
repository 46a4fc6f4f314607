package entitlement

import "errors"

var ErrQuotaExceeded = errors.New("free-tier post limit reached, activate a plan to keep posting")

// LimitError carries usage context for UI display
type LimitError struct {
	Err     error
	Current int64
	Limit   int
}

func (e *LimitError) Error() string { return e.Err.Error() }
func (e *LimitError) Unwrap() error { return e.Err }
