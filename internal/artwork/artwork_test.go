package artwork

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-pixiboo/model"
)

const leftBar = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 70 70">
  <rect x="0" y="0" width="30" height="70" fill="#ff0000"/>
</svg>`

const full = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 7 7">
  <rect x="0" y="0" width="7" height="7" fill="#00ff00"/>
</svg>`

func TestLoadSVGFullCanvas(t *testing.T) {
	s, err := LoadSVG(strings.NewReader(full), "green")
	require.NoError(t, err)
	assert.Equal(t, "green", s.Name())
	assert.Equal(t, model.LedCount, s.Lit())
	assert.Equal(t, model.Green, s.At(3, 3))
}

func TestLoadSVGScalesViewBox(t *testing.T) {
	s, err := LoadSVG(strings.NewReader(leftBar), "bar")
	require.NoError(t, err)
	for row := 0; row < model.Rows; row++ {
		assert.Equal(t, model.Red, s.At(row, 0))
		assert.Equal(t, model.Red, s.At(row, 1))
		assert.False(t, s.At(row, 2).IsOff())
		for col := 3; col < model.Cols; col++ {
			assert.True(t, s.At(row, col).IsOff(), "row %d col %d", row, col)
		}
	}
}

func TestLoadSVGError(t *testing.T) {
	_, err := LoadSVG(strings.NewReader("<svg"), "broken")
	assert.Error(t, err)
}

func halfRed(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 14, 14))
	for y := 0; y < 14; y++ {
		for x := 0; x < 7; x++ {
			img.Set(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoadImageDownsamples(t *testing.T) {
	s, err := LoadImage(bytes.NewReader(halfRed(t)), "half")
	require.NoError(t, err)
	for row := 0; row < model.Rows; row++ {
		for col := 0; col < model.Cols; col++ {
			if col < 3 {
				assert.Equal(t, model.Red, s.At(row, col))
			} else {
				assert.Equal(t, model.Off, s.At(row, col))
			}
		}
	}

	_, err = LoadImage(strings.NewReader("not an image"), "x")
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	svg := filepath.Join(dir, "block.svg")
	require.NoError(t, os.WriteFile(svg, []byte(full), 0644))
	pic := filepath.Join(dir, "half.png")
	require.NoError(t, os.WriteFile(pic, halfRed(t), 0644))

	s, err := LoadFile(svg)
	require.NoError(t, err)
	assert.Equal(t, "block", s.Name())
	assert.Equal(t, model.LedCount, s.Lit())

	s, err = LoadFile(pic)
	require.NoError(t, err)
	assert.Equal(t, "half", s.Name())
	assert.Equal(t, 3*model.Rows, s.Lit())

	_, err = LoadFile(filepath.Join(dir, "missing.svg"))
	assert.Error(t, err)
}
