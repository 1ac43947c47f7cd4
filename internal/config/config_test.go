package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
driver: spi
wiring: serpentine
brightness: 0.5
buttons:
  left: 5
imu:
  shake_mg: 2000
light:
  addr: 0x49
  channel: 2
`), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "spi", c.Driver)
	assert.Equal(t, "serpentine", c.Wiring)
	assert.Equal(t, 0.5, c.Brightness)
	assert.Equal(t, 5, c.Buttons.Left)
	assert.Equal(t, 11, c.Buttons.Center, "unset keys keep defaults")
	assert.Equal(t, "GRB", c.ColorOrder)
	assert.Equal(t, 30, c.FPS)
	assert.Equal(t, 2000, c.IMU.ShakeMg)
	assert.Equal(t, uint16(0x49), c.Light.Addr)
	assert.Equal(t, 2, c.Light.Channel)
	assert.Equal(t, Eyes{Left: "GPIO21", Right: "GPIO14"}, c.Eyes)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	want := Default()
	want.Driver = "pwm"
	want.Show = "show.yaml"
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("driver: [unterminated"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}
