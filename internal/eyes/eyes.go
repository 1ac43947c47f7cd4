// Package eyes drives the two single-colour eye LEDs beside the matrix.
package eyes

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// Pin is the subset of gpio.PinOut an eye needs.
type Pin interface {
	Out(l gpio.Level) error
}

// Eyes tracks the level it last wrote to each pin. Both start off.
type Eyes struct {
	left, right     Pin
	leftOn, rightOn bool
}

// Open looks both pins up by periph name, e.g. "GPIO21" and "GPIO14", and
// drives them low.
func Open(left, right string) (*Eyes, error) {
	l := gpioreg.ByName(left)
	if l == nil {
		return nil, fmt.Errorf("eye pin %q not found", left)
	}
	r := gpioreg.ByName(right)
	if r == nil {
		return nil, fmt.Errorf("eye pin %q not found", right)
	}
	return New(l, r)
}

func New(left, right Pin) (*Eyes, error) {
	e := &Eyes{left: left, right: right}
	if err := e.Off(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Eyes) set(p Pin, state *bool, on bool) error {
	if err := p.Out(gpio.Level(on)); err != nil {
		return fmt.Errorf("eyes: %w", err)
	}
	*state = on
	return nil
}

func (e *Eyes) SetLeft(on bool) error  { return e.set(e.left, &e.leftOn, on) }
func (e *Eyes) SetRight(on bool) error { return e.set(e.right, &e.rightOn, on) }

func (e *Eyes) LeftOn() error   { return e.SetLeft(true) }
func (e *Eyes) LeftOff() error  { return e.SetLeft(false) }
func (e *Eyes) RightOn() error  { return e.SetRight(true) }
func (e *Eyes) RightOff() error { return e.SetRight(false) }

// On lights both eyes; it stops at the first pin error.
func (e *Eyes) On() error {
	if err := e.LeftOn(); err != nil {
		return err
	}
	return e.RightOn()
}

func (e *Eyes) Off() error {
	if err := e.LeftOff(); err != nil {
		return err
	}
	return e.RightOff()
}

func (e *Eyes) ToggleLeft() error  { return e.SetLeft(!e.leftOn) }
func (e *Eyes) ToggleRight() error { return e.SetRight(!e.rightOn) }

// Toggle flips each eye independently, so a winking pair stays a wink.
func (e *Eyes) Toggle() error {
	if err := e.ToggleLeft(); err != nil {
		return err
	}
	return e.ToggleRight()
}

// State reports whether each eye is lit.
func (e *Eyes) State() (left, right bool) { return e.leftOn, e.rightOn }
