// Package imu reads acceleration from the board's I²C motion sensor and
// turns it into milli-g readings and shake events.
//
// Three chips are recognised: BNO055 (what the Pixiboo ships with),
// MPU6050/MPU9250 and LSM6DS3. Detection asks each known address for its
// identity register and takes the first match.
package imu

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

// Chip identifies the detected sensor.
type Chip string

const (
	BNO055  Chip = "bno055"
	MPU6050 Chip = "mpu6050"
	LSM6DS3 Chip = "lsm6ds3"
)

const (
	// DefaultShakeThreshold is the magnitude, in milli-g, above which a
	// reading counts as a shake.
	DefaultShakeThreshold = 1500
	// ShakeDebounce is the quiet period after a reported shake.
	ShakeDebounce = 500 * time.Millisecond
	// CalibrationSamples are averaged by Calibrate.
	CalibrationSamples = 10
)

var ErrNotFound = errors.New("imu: no known sensor on the bus")

// chipInfo describes how to find, wake and read one sensor family.
type chipInfo struct {
	chip   Chip
	addrs  []uint16
	idReg  byte
	ids    []byte
	init   [][2]byte // register writes, in order
	data   byte      // first of six acceleration registers
	little bool
	mgLSB  float64
}

// detection order; the BNO055 goes first as it is what the board carries.
var chips = []chipInfo{
	{
		chip:  BNO055,
		addrs: []uint16{0x28, 0x29},
		idReg: 0x00,
		ids:   []byte{0xA0},
		init: [][2]byte{
			{0x3D, 0x00}, // OPR_MODE: config
			{0x3E, 0x00}, // PWR_MODE: normal
			{0x07, 0x00}, // PAGE_ID
			{0x3F, 0x00}, // SYS_TRIGGER
			{0x3D, 0x0C}, // OPR_MODE: NDOF fusion
		},
		data:   0x08,
		little: true,
		mgLSB:  1.02, // 1 LSB = 0.01 m/s²
	},
	{
		chip:  MPU6050,
		addrs: []uint16{0x68, 0x69},
		idReg: 0x75,
		ids:   []byte{0x68, 0x71, 0x73},
		init:  [][2]byte{{0x6B, 0x00}}, // PWR_MGMT_1: wake
		data:  0x3B,
		mgLSB: 0.122, // ±2g full scale
	},
	{
		chip:   LSM6DS3,
		addrs:  []uint16{0x6A, 0x6B},
		idReg:  0x0F,
		ids:    []byte{0x69, 0x6A},
		init:   [][2]byte{{0x10, 0x40}}, // CTRL1_XL: 104 Hz, ±2g
		data:   0x28,
		little: true,
		mgLSB:  0.122,
	},
}

// Reading is one acceleration sample in milli-g.
type Reading struct {
	X, Y, Z int
}

// Magnitude is the length of the acceleration vector in milli-g.
func (r Reading) Magnitude() float64 {
	return math.Sqrt(float64(r.X*r.X + r.Y*r.Y + r.Z*r.Z))
}

func (r Reading) sub(o Reading) Reading {
	return Reading{r.X - o.X, r.Y - o.Y, r.Z - o.Z}
}

// IMU is not safe for concurrent use.
type IMU struct {
	dev    *i2c.Dev
	info   chipInfo
	closer interface{ Close() error }

	offset    Reading
	threshold int
	lastShake time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// Open opens an I²C bus by periph name ("" for the first one) and detects
// the sensor on it. periph's host drivers must be initialised first.
func Open(bus string) (*IMU, error) {
	b, err := i2creg.Open(bus)
	if err != nil {
		return nil, fmt.Errorf("imu: open bus %q: %w", bus, err)
	}
	m, err := New(b)
	if err != nil {
		b.Close()
		return nil, err
	}
	m.closer = b
	return m, nil
}

// New detects and wakes the sensor on bus.
func New(bus i2c.Bus) (*IMU, error) {
	return newIMU(bus, time.Sleep)
}

func newIMU(bus i2c.Bus, sleep func(time.Duration)) (*IMU, error) {
	m := &IMU{threshold: DefaultShakeThreshold, now: time.Now, sleep: sleep}
	if err := m.detect(bus); err != nil {
		return nil, err
	}
	for _, w := range m.info.init {
		if err := m.dev.Tx(w[:], nil); err != nil {
			return nil, fmt.Errorf("imu: init %s reg %#02x: %w", m.info.chip, w[0], err)
		}
		m.sleep(10 * time.Millisecond)
	}
	log.Debug().Str("chip", string(m.info.chip)).Str("addr", fmt.Sprintf("%#02x", m.dev.Addr)).Msg("imu ready")
	return m, nil
}

func (m *IMU) detect(bus i2c.Bus) error {
	id := make([]byte, 1)
	for _, ci := range chips {
		for _, addr := range ci.addrs {
			d := &i2c.Dev{Bus: bus, Addr: addr}
			if err := d.Tx([]byte{ci.idReg}, id); err != nil {
				continue
			}
			for _, want := range ci.ids {
				if id[0] == want {
					m.dev, m.info = d, ci
					return nil
				}
			}
			log.Debug().Uint16("addr", addr).Str("chip", string(ci.chip)).
				Uint8("id", id[0]).Msg("unexpected chip id")
		}
	}
	return ErrNotFound
}

func (m *IMU) Chip() Chip { return m.info.chip }

// Close releases the bus when the IMU opened it.
func (m *IMU) Close() error {
	if m.closer == nil {
		return nil
	}
	return m.closer.Close()
}

func (m *IMU) raw() (Reading, error) {
	var b [6]byte
	if err := m.dev.Tx([]byte{m.info.data}, b[:]); err != nil {
		return Reading{}, fmt.Errorf("imu: read %s: %w", m.info.chip, err)
	}
	axis := func(i int) int {
		var v int16
		if m.info.little {
			v = int16(uint16(b[i]) | uint16(b[i+1])<<8)
		} else {
			v = int16(uint16(b[i])<<8 | uint16(b[i+1]))
		}
		return int(float64(v) * m.info.mgLSB)
	}
	return Reading{axis(0), axis(2), axis(4)}, nil
}

// Read returns the calibrated acceleration on all three axes.
func (m *IMU) Read() (Reading, error) {
	r, err := m.raw()
	if err != nil {
		return Reading{}, err
	}
	return r.sub(m.offset), nil
}

func (m *IMU) X() (int, error) {
	r, err := m.Read()
	return r.X, err
}

func (m *IMU) Y() (int, error) {
	r, err := m.Read()
	return r.Y, err
}

func (m *IMU) Z() (int, error) {
	r, err := m.Read()
	return r.Z, err
}

// Calibrate takes the board to be lying flat and at rest: the averaged
// reading becomes (0, 0, 1000).
func (m *IMU) Calibrate() error {
	var sum Reading
	for i := 0; i < CalibrationSamples; i++ {
		r, err := m.raw()
		if err != nil {
			return err
		}
		sum.X, sum.Y, sum.Z = sum.X+r.X, sum.Y+r.Y, sum.Z+r.Z
		m.sleep(10 * time.Millisecond)
	}
	m.offset = Reading{
		X: sum.X / CalibrationSamples,
		Y: sum.Y / CalibrationSamples,
		Z: sum.Z/CalibrationSamples - 1000,
	}
	return nil
}

func (m *IMU) Offset() Reading { return m.offset }

// SetShakeThreshold sets the shake magnitude in milli-g. Values <= 0
// restore the default.
func (m *IMU) SetShakeThreshold(mg int) {
	if mg <= 0 {
		mg = DefaultShakeThreshold
	}
	m.threshold = mg
}

func (m *IMU) ShakeThreshold() int { return m.threshold }

// WasShaken takes one reading and reports a shake when its magnitude
// exceeds the threshold and no shake was reported in the last
// ShakeDebounce.
func (m *IMU) WasShaken() (bool, error) {
	r, err := m.Read()
	if err != nil {
		return false, err
	}
	return m.shaken(r), nil
}

func (m *IMU) shaken(r Reading) bool {
	mag2 := r.X*r.X + r.Y*r.Y + r.Z*r.Z
	if mag2 <= m.threshold*m.threshold {
		return false
	}
	now := m.now()
	if !m.lastShake.IsZero() && now.Sub(m.lastShake) < ShakeDebounce {
		return false
	}
	m.lastShake = now
	return true
}

// OnShake polls every interval and calls fn with the triggering reading for
// each shake until ctx is done. Read errors are logged and polling carries
// on.
func (m *IMU) OnShake(ctx context.Context, interval time.Duration, fn func(Reading)) error {
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
		r, err := m.Read()
		if err != nil {
			log.Debug().Err(err).Msg("shake poll")
			continue
		}
		if m.shaken(r) {
			fn(r)
		}
	}
}
