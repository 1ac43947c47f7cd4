package model_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/coreman2200/funtimes-pixiboo/model"
)

func TestBufferSetGetRoundTrip(t *testing.T) {
	var b PixelBuffer
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			col := RGB(r*36, c*36, r*c)
			require.NoError(t, b.Set(r, c, col))
			got, err := b.Get(r, c)
			require.NoError(t, err)
			assert.Equal(t, col, got)
		}
	}
}

func TestBufferOutOfRangeLeavesStateAlone(t *testing.T) {
	var b PixelBuffer
	b.Fill(Green)
	before := b.Snapshot()

	for _, rc := range [][2]int{{7, 0}, {0, -1}, {-1, 3}, {3, 7}} {
		err := b.Set(rc[0], rc[1], Red)
		assert.ErrorIs(t, err, ErrOutOfRange)
		_, err = b.Get(rc[0], rc[1])
		assert.ErrorIs(t, err, ErrOutOfRange)
	}
	assert.ErrorIs(t, b.FillRow(7, Red), ErrOutOfRange)
	assert.Equal(t, before, b.Snapshot())
}

func TestBufferSnapshotRowMajor(t *testing.T) {
	var b PixelBuffer
	require.NoError(t, b.Set(0, 1, Red))
	require.NoError(t, b.Set(1, 0, Blue))

	snap := b.Snapshot()
	require.Len(t, snap, LedCount)
	assert.Equal(t, Pixel{Coord: Coord{0, 1}, Color: Red}, snap[1])
	assert.Equal(t, Pixel{Coord: Coord{1, 0}, Color: Blue}, snap[7])
	assert.Equal(t, Coord{6, 6}, snap[48].Coord)
}

func TestBufferFillRow(t *testing.T) {
	var b PixelBuffer
	require.NoError(t, b.FillRow(2, Orange))
	for _, p := range b.Snapshot() {
		if p.Coord.Row == 2 {
			assert.Equal(t, Orange, p.Color)
		} else {
			assert.Equal(t, Off, p.Color)
		}
	}
}

func TestBufferShiftCols(t *testing.T) {
	var b PixelBuffer
	require.NoError(t, b.Set(3, 0, Red))
	require.NoError(t, b.Set(3, 6, Blue))

	b.ShiftCols(-1)
	assert.Equal(t, Off, b.At(Coord{3, 6}), "exposed column is off")
	assert.Equal(t, Blue, b.At(Coord{3, 5}))
	assert.Equal(t, Off, b.At(Coord{3, 0}), "left-most column dropped")

	b.ShiftCols(1)
	assert.Equal(t, Blue, b.At(Coord{3, 6}))
	assert.Equal(t, Off, b.At(Coord{3, 0}))
}

func TestBufferShiftRowsNoWrap(t *testing.T) {
	var b PixelBuffer
	b.Fill(White)
	for i := 0; i < Rows; i++ {
		b.ShiftRows(1)
	}
	for _, p := range b.Snapshot() {
		assert.Equal(t, Off, p.Color)
	}
}

func TestSpriteShape(t *testing.T) {
	assert.Equal(t, 34, Heart.Lit())
	assert.Equal(t, Red, Heart.At(0, 1))
	assert.Equal(t, Off, Heart.At(0, 0))
	assert.Equal(t, Off, Heart.At(9, 9))

	_, err := NewSprite("short", []string{"1111111"}, Red)
	assert.ErrorIs(t, err, ErrInvalidSpriteShape)

	_, err = NewSprite("wide", []string{
		"11111111", "0", "0", "0", "0", "0", "0",
	}, Red)
	assert.ErrorIs(t, err, ErrInvalidSpriteShape)

	_, err = NewSprite("junk", []string{
		"x000000", "0000000", "0000000", "0000000", "0000000", "0000000", "0000000",
	}, Red)
	assert.ErrorIs(t, err, ErrInvalidSpriteShape)

	_, err = SpriteFromColors("six", make([][]Color, 6))
	assert.ErrorIs(t, err, ErrInvalidSpriteShape)
}

func TestSpriteTint(t *testing.T) {
	blue := Heart.Tint(Blue)
	assert.Equal(t, Blue, blue.At(1, 0))
	assert.Equal(t, Off, blue.At(0, 0))
	assert.Equal(t, Red, Heart.At(1, 0), "original untouched")
}

func TestSpriteFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 7, 7))
	img.SetNRGBA(2, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetNRGBA(3, 4, color.NRGBA{R: 255, A: 40})

	s, err := SpriteFromImage("img", img)
	require.NoError(t, err)
	assert.Equal(t, Color{10, 20, 30}, s.At(4, 2))
	assert.Equal(t, Off, s.At(4, 3), "mostly transparent pixel is off")
	assert.Equal(t, 1, s.Lit())

	_, err = SpriteFromImage("big", image.NewNRGBA(image.Rect(0, 0, 8, 8)))
	assert.ErrorIs(t, err, ErrInvalidSpriteShape)
}

func TestSpriteByName(t *testing.T) {
	for _, name := range SpriteNames() {
		s, ok := SpriteByName(name)
		assert.True(t, ok, name)
		assert.Equal(t, name, s.Name())
	}
	_, ok := SpriteByName("dragon")
	assert.False(t, ok)
}

func TestSpriteByNameIgnoresReassignedVars(t *testing.T) {
	defer func(s Sprite) { Heart = s }(Heart)
	want := Heart
	Heart = Cross

	s, ok := SpriteByName("heart")
	require.True(t, ok)
	assert.Equal(t, want, s)

	tinted := s.Tint(Blue)
	again, _ := SpriteByName("heart")
	assert.Equal(t, want, again, "tinting a copy leaves the table alone")
	assert.NotEqual(t, want, tinted)
}
