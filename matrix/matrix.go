// Package matrix is the 7x7 display engine. A Matrix owns the logical pixel
// buffer, maps it through an AddressMap onto strip order, applies brightness
// and hands the bytes to an led.Driver.
//
// Indexing is always row first, column second: SetPixel(3, 0, c) lights the
// left-most pixel of the middle row.
//
// A Matrix is not safe for concurrent use; nothing in it runs in the
// background and only Render touches hardware.
package matrix

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-pixiboo/layout"
	"github.com/coreman2200/funtimes-pixiboo/led"
	"github.com/coreman2200/funtimes-pixiboo/model"
)

type Matrix struct {
	buf        model.PixelBuffer
	amap       *layout.AddressMap
	drv        led.Driver
	order      model.ColorOrder
	brightness float64

	// frame is reused between renders
	frame []byte

	stats Stats
}

// Stats holds cumulative counters and the timings of the most recent
// render.
type Stats struct {
	Frames   uint64
	Failures uint64
	EncodeMS float64
	WriteMS  float64
}

// New binds a matrix to a driver and an address map. The channel order is
// taken from the driver when it implements led.Ordered.
func New(drv led.Driver, amap *layout.AddressMap) (*Matrix, error) {
	if drv == nil {
		return nil, errors.New("matrix: nil driver")
	}
	if amap == nil {
		return nil, errors.New("matrix: nil address map")
	}
	return &Matrix{
		amap:       amap,
		drv:        drv,
		order:      led.OrderOf(drv),
		brightness: model.DefaultBrightness,
		frame:      make([]byte, model.FrameSize),
	}, nil
}

// SetColorOrder overrides the channel order used when encoding frames.
func (m *Matrix) SetColorOrder(o model.ColorOrder) error {
	if !o.Valid() {
		return fmt.Errorf("matrix: invalid color order %q", o)
	}
	m.order = o
	return nil
}

func (m *Matrix) ColorOrder() model.ColorOrder { return m.order }

// Clear turns every pixel off. Nothing is sent until Render.
func (m *Matrix) Clear() { m.buf.Fill(model.Off) }

func (m *Matrix) Fill(c model.Color) { m.buf.Fill(c) }

func (m *Matrix) FillRow(row int, c model.Color) error { return m.buf.FillRow(row, c) }

func (m *Matrix) SetPixel(row, col int, c model.Color) error { return m.buf.Set(row, col, c) }

func (m *Matrix) Pixel(row, col int) (model.Color, error) { return m.buf.Get(row, col) }

// Draw replaces the whole buffer with the sprite; it does not blend.
func (m *Matrix) Draw(s model.Sprite) {
	for r := 0; r < model.Rows; r++ {
		for c := 0; c < model.Cols; c++ {
			_ = m.buf.Set(r, c, s.At(r, c))
		}
	}
}

func (m *Matrix) ScrollLeft()  { m.buf.ShiftCols(-1) }
func (m *Matrix) ScrollRight() { m.buf.ShiftCols(1) }
func (m *Matrix) ScrollUp()    { m.buf.ShiftRows(-1) }
func (m *Matrix) ScrollDown()  { m.buf.ShiftRows(1) }

// SetBrightness sets the render-time scale in [0,1]. Out-of-range values are
// rejected and the previous level is kept.
func (m *Matrix) SetBrightness(level float64) error {
	if math.IsNaN(level) || level < 0 || level > 1 {
		return fmt.Errorf("matrix: %v: %w", level, model.ErrInvalidBrightness)
	}
	m.brightness = level
	return nil
}

func (m *Matrix) Brightness() float64 { return m.brightness }

// Snapshot returns the logical buffer in row-major order.
func (m *Matrix) Snapshot() []model.Pixel { return m.buf.Snapshot() }

// Frame encodes the buffer in strip order without touching the driver.
func (m *Matrix) Frame() []byte {
	out := make([]byte, model.FrameSize)
	m.encode(out)
	return out
}

func (m *Matrix) encode(dst []byte) {
	for i := 0; i < model.LedCount; i++ {
		// the map is a bijection over 0..LedCount-1, so Coord cannot fail here
		rc, _ := m.amap.Coord(i)
		m.buf.At(rc).Scale(m.brightness).Put(dst[i*3:i*3+3], m.order)
	}
}

// Render encodes the buffer and writes it to the driver. On failure the
// buffer is left as is and Render can simply be called again.
func (m *Matrix) Render() ([]byte, error) {
	start := time.Now()
	m.encode(m.frame)
	m.stats.EncodeMS = float64(time.Since(start).Microseconds()) / 1000.0

	writeStart := time.Now()
	err := m.drv.Write(m.frame)
	m.stats.WriteMS = float64(time.Since(writeStart).Microseconds()) / 1000.0
	if err != nil {
		m.stats.Failures++
		log.Debug().Err(err).Uint64("failures", m.stats.Failures).Msg("strip write failed")
		return nil, fmt.Errorf("matrix render: %w: %w", model.ErrDeviceWrite, err)
	}
	m.stats.Frames++
	return append([]byte(nil), m.frame...), nil
}

// Show renders and discards the frame bytes.
func (m *Matrix) Show() error {
	_, err := m.Render()
	return err
}

func (m *Matrix) Stats() Stats { return m.stats }

// Close turns the strip off and releases the driver.
func (m *Matrix) Close() error {
	m.Clear()
	werr := m.Show()
	if err := m.drv.Close(); err != nil {
		return err
	}
	return werr
}
