package client

import (
	"context"
	"errors"

	"github.com/cenkalti/backoff/v5"
)

// Retry calls op until it succeeds, retrying server and transport errors with an
// exponential backoff. Any other error is returned at once.
func Retry[T any](ctx context.Context, op func() (T, error), opts ...backoff.RetryOption) (T, error) {
	if len(opts) == 0 {
		opts = []backoff.RetryOption{backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(5)}
	}
	return backoff.Retry(ctx, func() (T, error) {
		v, err := op()
		if err != nil && !Retryable(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, opts...)
}

// Retryable tells whether err is a RemoteServerError or a RemoteTransportError.
func Retryable(err error) bool {
	var serverErr *RemoteServerError
	var transportErr *RemoteTransportError
	return errors.As(err, &serverErr) || errors.As(err, &transportErr)
}
