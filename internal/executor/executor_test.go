package executor

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_FastOperationWins(t *testing.T) {
	value, err := Run(func() (string, error) {
		return "done", nil
	}, 100*time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, "done", value)
}

func TestRun_OperationErrorPropagates(t *testing.T) {
	boom := errors.New("constraint violation")

	_, err := Run(func() (int, error) {
		return 0, boom
	}, 100*time.Millisecond)

	assert.ErrorIs(t, err, boom)
}

func TestRun_SlowOperationTimesOut(t *testing.T) {
	started := time.Now()

	value, err := Run(func() (string, error) {
		time.Sleep(300 * time.Millisecond)
		return "late", nil
	}, 20*time.Millisecond)

	assert.ErrorIs(t, err, ErrTimeout)
	assert.Empty(t, value)
	assert.Less(t, time.Since(started), 200*time.Millisecond)
}

func TestRun_LateResultIsDiscarded(t *testing.T) {
	finished := make(chan struct{})

	value, err := Run(func() (string, error) {
		defer close(finished)
		time.Sleep(50 * time.Millisecond)
		return "late", nil
	}, 5*time.Millisecond)

	require.ErrorIs(t, err, ErrTimeout)
	assert.Empty(t, value)

	// The abandoned operation still completes in the background; its
	// result never reaches the caller and its send never blocks.
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("abandoned operation never finished")
	}
}
