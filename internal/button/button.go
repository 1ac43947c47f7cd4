// Package button reads the board's three push buttons through the GPIO
// character device. It knows nothing about the matrix; applications decide
// what a press does.
package button

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/warthog618/go-gpiocdev"
)

type Name string

const (
	Left   Name = "left"
	Center Name = "center"
	Right  Name = "right"
)

// Pins are line offsets on the GPIO chip.
type Pins struct {
	Left, Center, Right int
}

// Event is one debounced edge. Buttons pull the line low when pressed.
type Event struct {
	Button  Name
	Pressed bool
	Time    time.Duration
}

type Buttons struct {
	mu        sync.Mutex
	lines     map[Name]*gpiocdev.Line
	names     map[int]Name
	callbacks map[Name][]func()
	events    chan Event
	dropped   int
}

func newButtons(p Pins) *Buttons {
	return &Buttons{
		lines:     map[Name]*gpiocdev.Line{},
		names:     map[int]Name{p.Left: Left, p.Center: Center, p.Right: Right},
		callbacks: map[Name][]func(){},
		events:    make(chan Event, 16),
	}
}

// Open requests the three lines as pulled-up inputs with kernel debounce.
func Open(chip string, p Pins, debounce time.Duration) (*Buttons, error) {
	if p.Left == p.Center || p.Left == p.Right || p.Center == p.Right {
		return nil, fmt.Errorf("button pins must differ: %+v", p)
	}
	b := newButtons(p)
	for off, name := range b.names {
		l, err := gpiocdev.RequestLine(chip, off,
			gpiocdev.AsInput,
			gpiocdev.WithPullUp,
			gpiocdev.WithBothEdges,
			gpiocdev.WithDebounce(debounce),
			gpiocdev.WithEventHandler(b.handle),
		)
		if err != nil {
			_ = b.Close()
			return nil, fmt.Errorf("request %s button (%s:%d): %w", name, chip, off, err)
		}
		b.lines[name] = l
	}
	return b, nil
}

func (b *Buttons) handle(evt gpiocdev.LineEvent) {
	name, ok := b.names[evt.Offset]
	if !ok {
		return
	}
	b.dispatch(Event{
		Button:  name,
		Pressed: evt.Type == gpiocdev.LineEventFallingEdge,
		Time:    evt.Timestamp,
	})
}

// dispatch runs on the gpiocdev event goroutine.
func (b *Buttons) dispatch(e Event) {
	select {
	case b.events <- e:
	default:
		b.mu.Lock()
		b.dropped++
		b.mu.Unlock()
		log.Warn().Str("button", string(e.Button)).Msg("button event dropped; consumer too slow")
	}
	if !e.Pressed {
		return
	}
	b.mu.Lock()
	cbs := append([]func(){}, b.callbacks[e.Button]...)
	b.mu.Unlock()
	for _, fn := range cbs {
		fn()
	}
}

// Events delivers every press and release. Events are dropped if the channel
// is full.
func (b *Buttons) Events() <-chan Event { return b.events }

// OnPress registers fn to run on each press. fn runs on the GPIO event
// goroutine.
func (b *Buttons) OnPress(name Name, fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.callbacks[name] = append(b.callbacks[name], fn)
}

// IsPressed samples the line directly, without debounce.
func (b *Buttons) IsPressed(name Name) bool {
	l, ok := b.lines[name]
	if !ok {
		return false
	}
	v, err := l.Value()
	return err == nil && v == 0
}

// Dropped counts events lost to a full channel.
func (b *Buttons) Dropped() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

func (b *Buttons) Close() error {
	var errs []error
	for name, l := range b.lines {
		if err := l.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
		delete(b.lines, name)
	}
	return errors.Join(errs...)
}
