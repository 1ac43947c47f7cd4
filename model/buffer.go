package model

const (
	Rows      = 7
	Cols      = 7
	LedCount  = Rows * Cols
	FrameSize = LedCount * 3
)

// Coord is a logical (row, column) position. Row comes first everywhere in
// this module: Coord{Row: 3, Col: 0} is the left-most pixel of the middle row.
type Coord struct {
	Row, Col int
}

// Valid reports whether c lies on the grid.
func (c Coord) Valid() bool {
	return InBounds(c.Row, c.Col)
}

// InBounds reports whether (row, col) lies on the grid.
func InBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// Pixel pairs a coordinate with its color.
type Pixel struct {
	Coord Coord
	Color Color
}

// PixelBuffer is the 7x7 logical grid. The zero value is all off.
type PixelBuffer struct {
	cells [Rows][Cols]Color
}

func (b *PixelBuffer) Get(row, col int) (Color, error) {
	if !InBounds(row, col) {
		return Off, coordError(row, col)
	}
	return b.cells[row][col], nil
}

func (b *PixelBuffer) Set(row, col int, c Color) error {
	if !InBounds(row, col) {
		return coordError(row, col)
	}
	b.cells[row][col] = c
	return nil
}

// At is Get without the bounds error; callers must pass a valid coordinate.
func (b *PixelBuffer) At(c Coord) Color {
	return b.cells[c.Row][c.Col]
}

func (b *PixelBuffer) Fill(c Color) {
	for r := range b.cells {
		for col := range b.cells[r] {
			b.cells[r][col] = c
		}
	}
}

// FillRow sets every cell of one row.
func (b *PixelBuffer) FillRow(row int, c Color) error {
	if row < 0 || row >= Rows {
		return coordError(row, 0)
	}
	for col := range b.cells[row] {
		b.cells[row][col] = c
	}
	return nil
}

// Snapshot lists every cell in row-major order.
func (b *PixelBuffer) Snapshot() []Pixel {
	out := make([]Pixel, 0, LedCount)
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			out = append(out, Pixel{Coord: Coord{Row: r, Col: c}, Color: b.cells[r][c]})
		}
	}
	return out
}

// ShiftCols moves every pixel n columns to the right (negative n moves left).
// Pixels pushed past an edge are dropped and the exposed columns are off.
func (b *PixelBuffer) ShiftCols(n int) {
	var next [Rows][Cols]Color
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			src := c - n
			if src >= 0 && src < Cols {
				next[r][c] = b.cells[r][src]
			}
		}
	}
	b.cells = next
}

// ShiftRows moves every pixel n rows down (negative n moves up), without
// wraparound.
func (b *PixelBuffer) ShiftRows(n int) {
	var next [Rows][Cols]Color
	for r := 0; r < Rows; r++ {
		src := r - n
		if src < 0 || src >= Rows {
			continue
		}
		next[r] = b.cells[src]
	}
	b.cells = next
}
