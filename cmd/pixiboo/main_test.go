package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c/i2ctest"

	"github.com/coreman2200/funtimes-pixiboo/internal/config"
	"github.com/coreman2200/funtimes-pixiboo/internal/eyes"
	"github.com/coreman2200/funtimes-pixiboo/internal/imu"
	"github.com/coreman2200/funtimes-pixiboo/internal/light"
	"github.com/coreman2200/funtimes-pixiboo/internal/show"
	"github.com/coreman2200/funtimes-pixiboo/layout"
	"github.com/coreman2200/funtimes-pixiboo/led"
	"github.com/coreman2200/funtimes-pixiboo/matrix"
	"github.com/coreman2200/funtimes-pixiboo/model"
)

func newApp(t *testing.T, demo string) (*app, *led.Sim) {
	t.Helper()
	sim := led.NewSim(model.LedCount)
	amap := layout.MustNew(layout.Pixiboo)
	m, err := matrix.New(sim, amap)
	require.NoError(t, err)
	cfg := config.Default()
	return &app{m: m, drv: sim, amap: amap, cfg: cfg, board: &board{}, opts: options{demo: demo, calib: "rgb_channels"}}, sim
}

func TestMarqueeProgramIsValid(t *testing.T) {
	assert.NoError(t, show.Validate(marquee()))
}

func TestHeartDemoRendersOnce(t *testing.T) {
	a, sim := newApp(t, "heart")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, a.run(ctx))
	assert.Equal(t, 1, sim.Frames)
	assert.NotEqual(t, make([]byte, model.FrameSize), sim.Last())
}

func TestCalibDemoWritesRawFrames(t *testing.T) {
	a, sim := newApp(t, "calib")
	require.NoError(t, a.run(context.Background()))
	assert.Equal(t, 3, sim.Frames)
	last := sim.Last()
	assert.Equal(t, byte(0), last[0])
	assert.Equal(t, byte(64), last[2], "blue phase")
}

func TestUnknownDemo(t *testing.T) {
	a, _ := newApp(t, "fireworks")
	assert.Error(t, a.run(context.Background()))

	a, _ = newApp(t, "show")
	assert.Error(t, a.run(context.Background()), "no show file")
}

func TestOpenDriverFallsBackToSim(t *testing.T) {
	cfg := config.Default()
	cfg.Driver = "laser"
	drv, name := openDriver(cfg, model.OrderGRB)
	assert.Equal(t, "sim", name)
	assert.Equal(t, model.OrderGRB, led.OrderOf(drv))

	cfg.Driver = "console"
	_, name = openDriver(cfg, model.OrderRGB)
	assert.Equal(t, "console", name)
}

type fakePin struct{ levels []gpio.Level }

func (p *fakePin) Out(l gpio.Level) error {
	p.levels = append(p.levels, l)
	return nil
}

func TestEyesDemoRunsRoutine(t *testing.T) {
	defer func(fps int) { eyeFPS = fps }(eyeFPS)
	eyeFPS = 500

	a, sim := newApp(t, "eyes")
	l, r := &fakePin{}, &fakePin{}
	e, err := eyes.New(l, r)
	require.NoError(t, err)
	a.board.eyes = e

	require.NoError(t, a.run(context.Background()))
	frames := 0
	for _, s := range eyeRoutine() {
		frames += s.frames
	}
	assert.Equal(t, frames, sim.Frames)
	assert.Contains(t, l.levels, gpio.High)
	assert.Contains(t, r.levels, gpio.High)
	left, right := e.State()
	assert.False(t, left)
	assert.False(t, right)
	assert.Equal(t, make([]byte, model.FrameSize), sim.Last(), "ends dark")
}

func TestEyesDemoWithoutLEDs(t *testing.T) {
	defer func(fps int) { eyeFPS = fps }(eyeFPS)
	eyeFPS = 500

	a, sim := newApp(t, "eyes")
	require.NoError(t, a.run(context.Background()))
	assert.Greater(t, sim.Frames, 0)
}

func bnoSample(x, y, z int16) i2ctest.IO {
	le := func(v int16) []byte { return []byte{byte(uint16(v)), byte(uint16(v) >> 8)} }
	return i2ctest.IO{Addr: 0x28, W: []byte{0x08}, R: append(append(le(x), le(y)...), le(z)...)}
}

func TestShakeDemoFlashesAndRecovers(t *testing.T) {
	ops := []i2ctest.IO{
		{Addr: 0x28, W: []byte{0x00}, R: []byte{0xA0}},
		{Addr: 0x28, W: []byte{0x3D, 0x00}},
		{Addr: 0x28, W: []byte{0x3E, 0x00}},
		{Addr: 0x28, W: []byte{0x07, 0x00}},
		{Addr: 0x28, W: []byte{0x3F, 0x00}},
		{Addr: 0x28, W: []byte{0x3D, 0x0C}},
	}
	for i := 0; i < imu.CalibrationSamples; i++ {
		ops = append(ops, bnoSample(0, 0, 980))
	}
	ops = append(ops, bnoSample(0, 0, 980), bnoSample(2000, 0, 0))
	bus := &i2ctest.Playback{Ops: ops, DontPanic: true}
	acc, err := imu.New(bus)
	require.NoError(t, err)

	a, sim := newApp(t, "shake")
	a.board.imu = acc
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	require.NoError(t, a.run(ctx))

	assert.NoError(t, bus.Close(), "calibrated, then polled through the shake")
	assert.Greater(t, sim.Frames, 5)
	assert.NotEqual(t, make([]byte, model.FrameSize), sim.Last(), "filled again after the flash")
}

type fakeADC struct{ raw int32 }

func (a *fakeADC) Range() (analog.Sample, analog.Sample) {
	return analog.Sample{}, analog.Sample{Raw: light.MaxLevel}
}

func (a *fakeADC) Read() (analog.Sample, error) { return analog.Sample{Raw: a.raw}, nil }

func TestLightDemo(t *testing.T) {
	a, _ := newApp(t, "light")
	assert.ErrorIs(t, a.run(context.Background()), errNoLight)

	a, sim := newApp(t, "light")
	a.board.light = light.New(&fakeADC{raw: light.MaxLevel})
	before := a.m.Brightness()
	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()
	require.NoError(t, a.run(ctx))

	assert.Greater(t, sim.Frames, 0)
	assert.Contains(t, sim.Last(), byte(255), "full light drives full brightness")
	assert.Equal(t, before, a.m.Brightness(), "brightness restored")
}
