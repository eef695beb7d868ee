package domain

import (
	"errors"
	"fmt"
)

// ErrMissingProfileID is returned when a request carries no profile identifier.
var ErrMissingProfileID = errors.New("profile_id is required")

// UpstreamError reports a failed or unparseable provider query.
type UpstreamError struct {
	Reason string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream: %s: %v", e.Reason, e.Err)
	}
	return "upstream: " + e.Reason
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ImageError reports a failed image fetch. It aborts the whole request; no
// partial payload is returned or cached.
type ImageError struct {
	URL string
	Err error
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("image fetch %s: %v", e.URL, e.Err)
}

func (e *ImageError) Unwrap() error { return e.Err }
