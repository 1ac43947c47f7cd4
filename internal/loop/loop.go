// Package loop runs a frame callback at a fixed rate and keeps frame timing
// metrics.
package loop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rcrowley/go-metrics"
	"github.com/rs/zerolog/log"
)

const DefaultFPS = 30

// ErrDone ends Run without an error when returned by a Frame.
var ErrDone = errors.New("loop done")

// Frame draws one frame. t is the time since Run started and dt the time
// since the previous frame.
type Frame func(t, dt time.Duration) error

type Looper struct {
	// MaxFailures is how many frames in a row may fail before Run gives up.
	MaxFailures int
	// LogEvery controls the periodic timing summary; zero disables it.
	LogEvery time.Duration

	fps      int
	frame    Frame
	registry metrics.Registry
	timer    metrics.Timer
	failures metrics.Counter
}

func New(fps int, frame Frame) *Looper {
	if fps <= 0 {
		fps = DefaultFPS
	}
	r := metrics.NewRegistry()
	return &Looper{
		MaxFailures: 10,
		LogEvery:    10 * time.Second,
		fps:         fps,
		frame:       frame,
		registry:    r,
		timer:       metrics.GetOrRegisterTimer("frame", r),
		failures:    metrics.GetOrRegisterCounter("frame.failures", r),
	}
}

func (l *Looper) FPS() int { return l.fps }

// Registry exposes the frame timer and failure counter.
func (l *Looper) Registry() metrics.Registry { return l.registry }

// Run calls the frame callback on every tick until ctx is done, the callback
// returns ErrDone, or MaxFailures frames fail in a row.
func (l *Looper) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(l.fps))
	defer ticker.Stop()

	start := time.Now()
	last := start
	lastLog := start
	inRow := 0
	for {
		select {
		case <-ctx.Done():
			l.summary()
			return nil
		case now := <-ticker.C:
			err := l.frame(now.Sub(start), now.Sub(last))
			l.timer.UpdateSince(now)
			last = now

			switch {
			case errors.Is(err, ErrDone):
				l.summary()
				return nil
			case err != nil:
				l.failures.Inc(1)
				inRow++
				log.Warn().Err(err).Int("in_row", inRow).Msg("frame failed")
				if l.MaxFailures > 0 && inRow >= l.MaxFailures {
					return fmt.Errorf("%d frames failed in a row: %w", inRow, err)
				}
			default:
				inRow = 0
			}

			if l.LogEvery > 0 && now.Sub(lastLog) >= l.LogEvery {
				l.summary()
				lastLog = now
			}
		}
	}
}

func (l *Looper) summary() {
	s := l.timer.Snapshot()
	if s.Count() == 0 {
		return
	}
	log.Info().
		Int64("frames", s.Count()).
		Int64("failures", l.failures.Count()).
		Float64("fps", s.Rate1()).
		Float64("mean_ms", s.Mean()/1e6).
		Float64("p95_ms", s.Percentile(0.95)/1e6).
		Float64("max_ms", float64(s.Max())/1e6).
		Msg("frame timing")
}
