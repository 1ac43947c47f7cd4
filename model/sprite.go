package model

import (
	"fmt"
	"image"
)

// Sprite is a named, read-only 7x7 pattern. Cells never given a color are off.
type Sprite struct {
	name  string
	cells [Rows][Cols]Color
}

// NewSprite builds a sprite from seven strings of seven characters each.
// '1' lights the cell with on; '0', '.' and ' ' leave it off.
func NewSprite(name string, rows []string, on Color) (Sprite, error) {
	s := Sprite{name: name}
	if len(rows) != Rows {
		return Sprite{}, fmt.Errorf("sprite %q: %d rows: %w", name, len(rows), ErrInvalidSpriteShape)
	}
	for r, line := range rows {
		if len(line) != Cols {
			return Sprite{}, fmt.Errorf("sprite %q: row %d has %d columns: %w", name, r, len(line), ErrInvalidSpriteShape)
		}
		for c := 0; c < Cols; c++ {
			switch line[c] {
			case '1':
				s.cells[r][c] = on
			case '0', '.', ' ':
			default:
				return Sprite{}, fmt.Errorf("sprite %q: unexpected %q at (%d,%d): %w", name, line[c], r, c, ErrInvalidSpriteShape)
			}
		}
	}
	return s, nil
}

// MustSprite is NewSprite for package-level sprite tables.
func MustSprite(name string, rows []string, on Color) Sprite {
	s, err := NewSprite(name, rows, on)
	if err != nil {
		panic(err)
	}
	return s
}

// SpriteFromColors builds a sprite from an explicit 7x7 color grid.
func SpriteFromColors(name string, grid [][]Color) (Sprite, error) {
	s := Sprite{name: name}
	if len(grid) != Rows {
		return Sprite{}, fmt.Errorf("sprite %q: %d rows: %w", name, len(grid), ErrInvalidSpriteShape)
	}
	for r, line := range grid {
		if len(line) != Cols {
			return Sprite{}, fmt.Errorf("sprite %q: row %d has %d columns: %w", name, r, len(line), ErrInvalidSpriteShape)
		}
		copy(s.cells[r][:], line)
	}
	return s, nil
}

// SpriteFromImage samples img on a 7x7 grid. Images of any other size are
// rejected; pixels under half opacity are off.
func SpriteFromImage(name string, img image.Image) (Sprite, error) {
	b := img.Bounds()
	if b.Dx() != Cols || b.Dy() != Rows {
		return Sprite{}, fmt.Errorf("sprite %q: image is %dx%d: %w", name, b.Dx(), b.Dy(), ErrInvalidSpriteShape)
	}
	s := Sprite{name: name}
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			pr, pg, pb, pa := img.At(b.Min.X+c, b.Min.Y+r).RGBA()
			if pa < 0x8000 {
				continue
			}
			// un-premultiply back to straight 8-bit channels
			s.cells[r][c] = Color{
				R: uint8(pr * 0xff / pa),
				G: uint8(pg * 0xff / pa),
				B: uint8(pb * 0xff / pa),
			}
		}
	}
	return s, nil
}

func (s Sprite) Name() string { return s.name }

// At returns the color of a cell; out-of-range cells read as off.
func (s Sprite) At(row, col int) Color {
	if !InBounds(row, col) {
		return Off
	}
	return s.cells[row][col]
}

// Tint returns a copy with every lit cell recolored to c.
func (s Sprite) Tint(c Color) Sprite {
	out := s
	for r := range out.cells {
		for col := range out.cells[r] {
			if !out.cells[r][col].IsOff() {
				out.cells[r][col] = c
			}
		}
	}
	return out
}

// Lit counts the cells that are not off.
func (s Sprite) Lit() int {
	n := 0
	for r := range s.cells {
		for c := range s.cells[r] {
			if !s.cells[r][c].IsOff() {
				n++
			}
		}
	}
	return n
}
