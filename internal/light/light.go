// Package light reads the ambient light sensor (a TEMT6000 phototransistor).
//
// The Pi has no ADC of its own, so on a Pi the sensor hangs off an ADS1015
// on the I²C bus. Any analog.PinADC works; readings are scaled to 12 bits
// whatever the converter's native range.
package light

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
)

// MaxLevel is the brightest reading.
const MaxLevel = 4095

// ADC is the subset of analog.PinADC the sensor needs.
type ADC interface {
	Range() (analog.Sample, analog.Sample)
	Read() (analog.Sample, error)
}

type Sensor struct {
	pin    ADC
	top    int32
	closer func() error
}

// Open reads channel (0-3) of an ADS1015 at addr on the named I²C bus.
// periph's host drivers must be initialised first.
func Open(bus string, addr uint16, channel int) (*Sensor, error) {
	if channel < 0 || channel > 3 {
		return nil, fmt.Errorf("light: channel %d out of range 0-3", channel)
	}
	b, err := i2creg.Open(bus)
	if err != nil {
		return nil, fmt.Errorf("light: open bus %q: %w", bus, err)
	}
	adc, err := ads1x15.NewADS1015(b, &ads1x15.Opts{I2cAddress: addr})
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("light: %w", err)
	}
	pin, err := adc.PinForChannel(ads1x15.Channel0+ads1x15.Channel(channel),
		3300*physic.MilliVolt, 10*physic.Hertz, ads1x15.SaveEnergy)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("light: %w", err)
	}
	s := New(pin)
	s.closer = func() error {
		_ = pin.Halt()
		return b.Close()
	}
	log.Debug().Str("adc", adc.String()).Int("channel", channel).Msg("light sensor ready")
	return s, nil
}

func New(pin ADC) *Sensor {
	_, hi := pin.Range()
	top := hi.Raw
	if top <= 0 {
		top = MaxLevel
	}
	return &Sensor{pin: pin, top: top}
}

// Read returns the light level in 0..MaxLevel. Readings below ground, which
// a differential converter can report, count as dark.
func (s *Sensor) Read() (int, error) {
	v, err := s.pin.Read()
	if err != nil {
		return 0, fmt.Errorf("light: %w", err)
	}
	raw := v.Raw
	if raw < 0 {
		raw = 0
	}
	if raw > s.top {
		raw = s.top
	}
	return int(int64(raw) * MaxLevel / int64(s.top)), nil
}

// ReadPercent returns the light level in 0..100.
func (s *Sensor) ReadPercent() (float64, error) {
	l, err := s.Read()
	if err != nil {
		return 0, err
	}
	return Percent(l), nil
}

func Percent(level int) float64 { return float64(level) / MaxLevel * 100 }

// Brightness maps a level onto a matrix brightness that never quite goes
// dark: 0.1 in the dark up to 1 in full light.
func Brightness(level int) float64 {
	if level < 0 {
		level = 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return 0.1 + float64(level)/MaxLevel*0.9
}

func (s *Sensor) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}
