package led

import (
	"fmt"
	"io"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"

	"github.com/coreman2200/funtimes-pixiboo/model"
)

// DefaultFreq clocks the SPI bus at three bits per NRZ bit for 800kHz LEDs.
const DefaultFreq = (800*3 + 100) * physic.KiloHertz

// NRZ drives WS2812-class LEDs by shaping NRZ pulses on an SPI MOSI line.
type NRZ struct {
	dev   *nrzled.Dev
	port  io.Closer
	count int
}

// OpenNRZ opens an SPI bus by name ("" picks the first one) and binds a strip
// of count LEDs to it.
func OpenNRZ(bus string, count int, freq physic.Frequency) (*NRZ, error) {
	p, err := spireg.Open(bus)
	if err != nil {
		return nil, fmt.Errorf("open spi %q: %w", bus, err)
	}
	n, err := NewNRZ(p, count, freq)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	n.port = p
	return n, nil
}

// NewNRZ binds a strip to an already opened port. The port is not closed by
// Close.
func NewNRZ(p spi.Port, count int, freq physic.Frequency) (*NRZ, error) {
	if count <= 0 {
		return nil, fmt.Errorf("invalid LED count: %d", count)
	}
	if freq == 0 {
		freq = DefaultFreq
	}
	d, err := nrzled.NewSPI(p, &nrzled.Opts{
		NumPixels: count,
		Channels:  3,
		Freq:      freq,
	})
	if err != nil {
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	return &NRZ{dev: d, count: count}, nil
}

// Write takes RGB triplets; nrzled reorders to the LEDs' native GRB.
func (n *NRZ) Write(frame []byte) error {
	if err := checkLen(frame, n.count); err != nil {
		return err
	}
	if _, err := n.dev.Write(frame); err != nil {
		return fmt.Errorf("nrzled write: %w", err)
	}
	return nil
}

func (n *NRZ) Close() error {
	err := n.dev.Halt()
	if n.port != nil {
		if cerr := n.port.Close(); err == nil {
			err = cerr
		}
		n.port = nil
	}
	return err
}

func (n *NRZ) ColorOrder() model.ColorOrder { return model.OrderRGB }

func (n *NRZ) String() string { return n.dev.String() }
