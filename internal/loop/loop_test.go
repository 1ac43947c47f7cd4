package loop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunUntilDone(t *testing.T) {
	var calls int
	var ts []time.Duration
	l := New(500, func(tm, dt time.Duration) error {
		calls++
		ts = append(ts, tm)
		if calls == 5 {
			return ErrDone
		}
		return nil
	})
	require.NoError(t, l.Run(context.Background()))
	assert.Equal(t, 5, calls)
	for i := 1; i < len(ts); i++ {
		assert.Greater(t, ts[i], ts[i-1])
	}
	assert.Equal(t, int64(5), l.timer.Count())
	assert.Equal(t, 500, l.FPS())
}

func TestRunCountsFailures(t *testing.T) {
	calls := 0
	l := New(500, func(time.Duration, time.Duration) error {
		calls++
		switch {
		case calls <= 3:
			return errors.New("strip busy")
		case calls == 6:
			return ErrDone
		}
		return nil
	})
	l.MaxFailures = 4
	require.NoError(t, l.Run(context.Background()))
	assert.Equal(t, int64(3), l.failures.Count())
	assert.NotNil(t, l.Registry().Get("frame.failures"))
}

func TestRunGivesUp(t *testing.T) {
	boom := errors.New("boom")
	l := New(500, func(time.Duration, time.Duration) error { return boom })
	l.MaxFailures = 3
	err := l.Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := New(0, func(time.Duration, time.Duration) error {
		cancel()
		return nil
	})
	assert.Equal(t, DefaultFPS, l.FPS())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
