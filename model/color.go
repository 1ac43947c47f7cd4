package model

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB value as the user sees it, before brightness is applied.
type Color struct {
	R, G, B uint8
}

// RGB builds a Color, clamping each channel into [0,255].
func RGB(r, g, b int) Color {
	return Color{R: clamp8(r), G: clamp8(g), B: clamp8(b)}
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// IsOff reports whether every channel is zero.
func (c Color) IsOff() bool {
	return c == Off
}

// Scale multiplies each channel by level, rounding to the nearest integer.
func (c Color) Scale(level float64) Color {
	return Color{
		R: scale8(c.R, level),
		G: scale8(c.G, level),
		B: scale8(c.B, level),
	}
}

func scale8(v uint8, level float64) uint8 {
	s := math.Round(float64(v) * level)
	if s <= 0 || math.IsNaN(s) {
		return 0
	}
	if s >= 255 {
		return 255
	}
	return uint8(s)
}

// Put writes the three channels into dst[0:3] in the given wire order.
func (c Color) Put(dst []byte, order ColorOrder) {
	for i := 0; i < 3; i++ {
		switch order[i] {
		case 'R':
			dst[i] = c.R
		case 'G':
			dst[i] = c.G
		case 'B':
			dst[i] = c.B
		}
	}
}

// Bytes returns the channels in the given wire order.
func (c Color) Bytes(order ColorOrder) [3]byte {
	var b [3]byte
	c.Put(b[:], order)
	return b
}

// NRGBA converts to an opaque image color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	return c.toColorful().Hex()
}

func (c Color) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}

func (c Color) toColorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// ParseHex parses a "#rrggbb" string.
func ParseHex(s string) (Color, error) {
	cf, err := colorful.Hex(s)
	if err != nil {
		return Off, fmt.Errorf("parse color %q: %w", s, err)
	}
	return FromColorful(cf), nil
}

// FromColorful converts a go-colorful value, clamping out-of-gamut channels.
func FromColorful(cf colorful.Color) Color {
	r, g, b := cf.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// Hue returns a fully saturated color for hue h in degrees at value v (0..1).
func Hue(h, v float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return FromColorful(colorful.Hsv(h, 1, v))
}

// ColorOrder names the channel order a strip expects on the wire, e.g. "GRB".
type ColorOrder string

const (
	OrderRGB ColorOrder = "RGB"
	OrderRBG ColorOrder = "RBG"
	OrderGRB ColorOrder = "GRB"
	OrderGBR ColorOrder = "GBR"
	OrderBRG ColorOrder = "BRG"
	OrderBGR ColorOrder = "BGR"
)

// ParseColorOrder accepts any permutation of R, G and B (case-insensitive).
func ParseColorOrder(s string) (ColorOrder, error) {
	o := ColorOrder(strings.ToUpper(strings.TrimSpace(s)))
	if !o.Valid() {
		return OrderRGB, fmt.Errorf("invalid color order %q", s)
	}
	return o, nil
}

// Valid reports whether o is a permutation of "RGB".
func (o ColorOrder) Valid() bool {
	if len(o) != 3 {
		return false
	}
	seen := map[byte]bool{}
	for i := 0; i < 3; i++ {
		switch o[i] {
		case 'R', 'G', 'B':
			if seen[o[i]] {
				return false
			}
			seen[o[i]] = true
		default:
			return false
		}
	}
	return true
}

// Blend mixes a towards b by t in [0,1] in RGB space.
func Blend(a, b Color, t float64) Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return FromColorful(a.toColorful().BlendRgb(b.toColorful(), t))
}
