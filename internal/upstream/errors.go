package upstream

import (
	"errors"
	"fmt"
)

// HTTPError is returned when an upstream answers with a non-2xx status.
type HTTPError struct {
	Upstream   string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s api error: status %d", e.Upstream, e.StatusCode)
}

// LogicalError is returned when the upstream answered 200 but its payload
// reports a failure in its own status field.
type LogicalError struct {
	Upstream string
	Message  string
}

func (e *LogicalError) Error() string {
	if e.Message == "" {
		return e.Upstream + " api reported an error"
	}
	return fmt.Sprintf("%s api: %s", e.Upstream, e.Message)
}

// AsLogical unwraps err into a *LogicalError if it carries one.
func AsLogical(err error) (*LogicalError, bool) {
	var le *LogicalError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}

// StatusCode extracts the upstream HTTP status from err, if any.
func StatusCode(err error) (int, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode, true
	}
	return 0, false
}
