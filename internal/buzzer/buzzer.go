// Package buzzer plays square-wave tones on the board's piezo through a
// periph GPIO pin that supports PWM.
package buzzer

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
)

// DefaultNoteDuration applies to notes written without a duration.
const DefaultNoteDuration = 250 * time.Millisecond

// Pin is the subset of gpio.PinOut the buzzer needs.
type Pin interface {
	Out(l gpio.Level) error
	PWM(duty gpio.Duty, f physic.Frequency) error
}

// Note is a tone; a zero Freq is a rest.
type Note struct {
	Freq physic.Frequency
	Dur  time.Duration
}

type Buzzer struct {
	pin   Pin
	after func(time.Duration) <-chan time.Time
}

// Open looks a pin up by its periph name, e.g. "GPIO38".
func Open(name string) (*Buzzer, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("buzzer pin %q not found", name)
	}
	return New(p), nil
}

func New(p Pin) *Buzzer {
	return &Buzzer{pin: p, after: time.After}
}

// Tone sounds one frequency for d, or until ctx is done.
func (b *Buzzer) Tone(ctx context.Context, f physic.Frequency, d time.Duration) error {
	return b.Play(ctx, []Note{{Freq: f, Dur: d}})
}

// Play sounds each note in turn and silences the pin afterwards, also when
// ctx is cancelled part way through.
func (b *Buzzer) Play(ctx context.Context, melody []Note) error {
	defer b.Stop()
	for _, n := range melody {
		d := n.Dur
		if d <= 0 {
			d = DefaultNoteDuration
		}
		var err error
		if n.Freq == 0 {
			err = b.pin.Out(gpio.Low)
		} else {
			err = b.pin.PWM(gpio.DutyHalf, n.Freq)
		}
		if err != nil {
			return fmt.Errorf("buzzer: %w", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-b.after(d):
		}
	}
	return nil
}

// Stop silences the buzzer.
func (b *Buzzer) Stop() error {
	return b.pin.Out(gpio.Low)
}

var noteOffsets = map[string]int{
	"C": -9, "C#": -8, "D": -7, "D#": -6, "E": -5, "F": -4,
	"F#": -3, "G": -2, "G#": -1, "A": 0, "A#": 1, "B": 2,
}

// ParseMelody reads space separated notes of the form "freq[:ms]" where freq
// is either hertz ("440") or a note name ("A4", "C#5"). "R" is a rest.
func ParseMelody(s string) ([]Note, error) {
	var out []Note
	for _, tok := range strings.Fields(s) {
		name, ms, hasDur := strings.Cut(tok, ":")
		n := Note{}
		if hasDur {
			v, err := strconv.Atoi(ms)
			if err != nil || v <= 0 {
				return nil, fmt.Errorf("note %q: bad duration", tok)
			}
			n.Dur = time.Duration(v) * time.Millisecond
		}
		f, err := parseFreq(name)
		if err != nil {
			return nil, fmt.Errorf("note %q: %w", tok, err)
		}
		n.Freq = f
		out = append(out, n)
	}
	return out, nil
}

func parseFreq(s string) (physic.Frequency, error) {
	if strings.EqualFold(s, "R") {
		return 0, nil
	}
	if hz, err := strconv.Atoi(s); err == nil {
		if hz < 0 {
			return 0, fmt.Errorf("negative frequency")
		}
		return physic.Frequency(hz) * physic.Hertz, nil
	}
	if len(s) < 2 {
		return 0, fmt.Errorf("unknown note")
	}
	octave, err := strconv.Atoi(s[len(s)-1:])
	if err != nil {
		return 0, fmt.Errorf("unknown note")
	}
	off, ok := noteOffsets[strings.ToUpper(s[:len(s)-1])]
	if !ok {
		return 0, fmt.Errorf("unknown note")
	}
	semis := off + (octave-4)*12
	hz := 440 * math.Pow(2, float64(semis)/12)
	return physic.Frequency(hz*1000+0.5) * physic.MilliHertz, nil
}
