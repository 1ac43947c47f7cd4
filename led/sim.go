package led

import (
	"errors"

	"github.com/coreman2200/funtimes-pixiboo/model"
)

// Sim keeps the last frame in memory instead of driving hardware.
type Sim struct {
	Count  int
	Order  model.ColorOrder
	Frames int

	last   []byte
	fail   error
	closed bool
}

// NewSim returns a simulated strip of count LEDs.
func NewSim(count int) *Sim {
	return &Sim{Count: count, Order: model.OrderRGB}
}

func (s *Sim) Write(frame []byte) error {
	if s.closed {
		return errors.New("sim closed")
	}
	if s.fail != nil {
		return s.fail
	}
	if err := checkLen(frame, s.Count); err != nil {
		return err
	}
	s.last = append(s.last[:0], frame...)
	s.Frames++
	return nil
}

func (s *Sim) Close() error {
	s.closed = true
	return nil
}

func (s *Sim) ColorOrder() model.ColorOrder { return s.Order }

// Last returns a copy of the most recent frame, nil before the first write.
func (s *Sim) Last() []byte {
	if s.last == nil {
		return nil
	}
	return append([]byte(nil), s.last...)
}

// FailWith makes every following Write return err until cleared with nil.
func (s *Sim) FailWith(err error) { s.fail = err }
