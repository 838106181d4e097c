// Package executor runs blocking store calls against a deadline.
package executor

import (
	"errors"
	"time"
)

// ErrTimeout is returned when the guarded call does not finish within
// its deadline.
var ErrTimeout = errors.New("operation timed out")

type result[T any] struct {
	value T
	err   error
}

// Run races fn against the given deadline. Exactly one outcome is ever
// delivered to the caller: whichever of fn and the timer finishes first.
//
// This is a soft timeout. On expiry fn keeps running in the background
// and its late result is discarded; the underlying query is not
// cancelled. The result channel is buffered so the abandoned goroutine
// never blocks on send.
func Run[T any](fn func() (T, error), timeout time.Duration) (T, error) {
	done := make(chan result[T], 1)

	go func() {
		value, err := fn()
		done <- result[T]{value: value, err: err}
	}()

	select {
	case res := <-done:
		return res.value, res.err
	case <-time.After(timeout):
		var zero T
		return zero, ErrTimeout
	}
}
