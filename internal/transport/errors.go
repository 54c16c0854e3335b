package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// RemoteRejectionError is a non-2xx reply from the collection endpoint. Body
// holds the raw response text for the operator.
type RemoteRejectionError struct {
	URL        string
	StatusCode int
	Status     string
	Body       string
}

func (e *RemoteRejectionError) Error() string {
	return fmt.Sprintf("POST %s: server returned %s", e.URL, e.Status)
}

// TransportError is a network failure, timeout, or unreadable reply.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("POST %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the request ran past the client timeout.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}
