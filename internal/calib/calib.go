// Package calib produces raw strip frames for checking wiring and channel
// order. Frames bypass the matrix so the address map itself can be verified.
package calib

import (
	"fmt"

	"github.com/coreman2200/funtimes-pixiboo/layout"
	"github.com/coreman2200/funtimes-pixiboo/model"
)

type Kind string

const (
	None       Kind = ""
	IndexSweep Kind = "index_sweep"
	RGBTest    Kind = "rgb_channels"
	RowSweep   Kind = "row_sweep"
	ColSweep   Kind = "col_sweep"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case IndexSweep, RGBTest, RowSweep, ColSweep:
		return k, nil
	}
	return None, fmt.Errorf("unknown calibration %q", s)
}

// Plan selects a pattern. Level is the channel value used for lit LEDs; zero
// means 64. Order is the strip's channel order for the sweeps, RGB if unset.
type Plan struct {
	Kind  Kind
	Level uint8
	Order model.ColorOrder
}

type Runner struct {
	plan Plan
	amap *layout.AddressMap
	step int
}

func NewRunner(plan Plan, amap *layout.AddressMap) *Runner {
	if plan.Level == 0 {
		plan.Level = 64
	}
	if !plan.Order.Valid() {
		plan.Order = model.OrderRGB
	}
	return &Runner{plan: plan, amap: amap}
}

func (r *Runner) Kind() Kind { return r.plan.Kind }

// Steps is the number of frames the pattern produces.
func (r *Runner) Steps() int {
	switch r.plan.Kind {
	case IndexSweep:
		return model.LedCount
	case RGBTest:
		return 3
	case RowSweep:
		return model.Rows
	case ColSweep:
		return model.Cols
	}
	return 0
}

// Step fills rgb, a strip-order frame of model.FrameSize bytes, and returns
// false once the pattern is complete.
//
//	index_sweep: one white LED per step, in strip order
//	rgb_channels: every LED red, then green, then blue, as raw bytes 0, 1, 2
//	row_sweep / col_sweep: one logical row or column in cyan
func (r *Runner) Step(rgb []byte) bool {
	for i := range rgb {
		rgb[i] = 0
	}
	if r.step >= r.Steps() {
		return false
	}
	lv := r.plan.Level
	switch r.plan.Kind {
	case IndexSweep:
		i := r.step
		rgb[i*3+0], rgb[i*3+1], rgb[i*3+2] = lv, lv, lv
	case RGBTest:
		for i := 0; i < model.LedCount; i++ {
			rgb[i*3+r.step] = lv
		}
	case RowSweep:
		for col := 0; col < model.Cols; col++ {
			r.light(rgb, r.step, col)
		}
	case ColSweep:
		for row := 0; row < model.Rows; row++ {
			r.light(rgb, row, r.step)
		}
	}
	r.step++
	return true
}

func (r *Runner) light(rgb []byte, row, col int) {
	i, err := r.amap.PhysicalIndex(row, col)
	if err != nil {
		return
	}
	model.Color{G: r.plan.Level, B: r.plan.Level}.Put(rgb[i*3:i*3+3], r.plan.Order)
}

// Reset starts the pattern again.
func (r *Runner) Reset() { r.step = 0 }
