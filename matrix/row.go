package matrix

import (
	"fmt"

	"github.com/coreman2200/funtimes-pixiboo/model"
)

// RowView is a bounds-checked handle on one row, for m.Row(r).Set(c, color)
// style code.
type RowView struct {
	m   *Matrix
	row int
}

// Row returns a view of row r.
func (m *Matrix) Row(r int) (RowView, error) {
	if r < 0 || r >= model.Rows {
		return RowView{}, fmt.Errorf("row %d: %w", r, model.ErrOutOfRange)
	}
	return RowView{m: m, row: r}, nil
}

func (v RowView) Index() int { return v.row }

func (v RowView) Get(col int) (model.Color, error) { return v.m.Pixel(v.row, col) }

func (v RowView) Set(col int, c model.Color) error { return v.m.SetPixel(v.row, col, c) }

func (v RowView) Fill(c model.Color) { _ = v.m.FillRow(v.row, c) }
