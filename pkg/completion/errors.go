package completion

import (
	"errors"
	"fmt"
)

// ErrUpstream is matched by errors.Is for every *UpstreamError.
var ErrUpstream = errors.New("upstream completion failed")

// UpstreamError is returned when the completion call fails: transport errors,
// timeouts, non-200 responses, undecodable bodies or an empty candidate list.
type UpstreamError struct {
	// Op names the step that failed (e.g. "do request", "decode response").
	Op string

	// StatusCode is the HTTP status returned by the service, or 0 when no
	// response was received.
	StatusCode int

	Err error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("completion %s: upstream returned %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("completion %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrUpstream) match any UpstreamError.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// ConfigurationError is returned by New when the client cannot be built from
// its Config. It is fatal at startup.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "completion configuration: " + e.Field + ": " + e.Reason
}
