package client

import (
	"fmt"

	v1 "github.com/gridstore/network-store/api/v1"
)

// RemoteClientError is returned for a 4xx response other than a 404 on a lookup.
// Detail is set when the body is an error envelope.
type RemoteClientError struct {
	Status int
	Body   string
	Detail *v1.Error
}

func (e *RemoteClientError) Error() string {
	if e.Detail != nil {
		return fmt.Sprintf("remote client error %d: %s", e.Status, e.Detail.Message)
	}
	return fmt.Sprintf("remote client error %d: %s", e.Status, e.Body)
}

// RemoteServerError is returned for a 5xx response. The body is kept as received.
type RemoteServerError struct {
	Status     int
	StatusText string
	Body       []byte
}

func (e *RemoteServerError) Error() string {
	return fmt.Sprintf("remote server error %d %s", e.Status, e.StatusText)
}

// RemoteTransportError is returned when no response could be read.
type RemoteTransportError struct {
	Op  string
	Err error
}

func (e *RemoteTransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteTransportError) Unwrap() error {
	return e.Err
}

// RemoteDecodeError is returned when a 2xx response body cannot be decoded. The remote
// applied the call, so it is not retried.
type RemoteDecodeError struct {
	Op   string
	Body []byte
	Err  error
}

func (e *RemoteDecodeError) Error() string {
	return fmt.Sprintf("%s: failed to decode response: %v", e.Op, e.Err)
}

func (e *RemoteDecodeError) Unwrap() error {
	return e.Err
}
