// Package effects generates whole-matrix animations. An effect is a pure
// function of elapsed time: it overwrites every pixel and leaves rendering to
// the caller.
package effects

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/ojrac/opensimplex-go"

	"github.com/coreman2200/funtimes-pixiboo/matrix"
	"github.com/coreman2200/funtimes-pixiboo/model"
)

type Effect interface {
	Frame(m *matrix.Matrix, t time.Duration)
}

// Func adapts a plain function to Effect.
type Func func(m *matrix.Matrix, t time.Duration)

func (f Func) Frame(m *matrix.Matrix, t time.Duration) { f(m, t) }

// Rainbow gives each row its own hue and rotates all of them over time.
type Rainbow struct {
	// Speed in full hue turns per second.
	Speed float64
	// Spread is the hue step between neighbouring rows, in degrees.
	Spread float64
}

func NewRainbow() *Rainbow {
	return &Rainbow{Speed: 0.25, Spread: 360.0 / model.Rows}
}

func (r *Rainbow) Frame(m *matrix.Matrix, t time.Duration) {
	base := t.Seconds() * r.Speed * 360
	for row := 0; row < model.Rows; row++ {
		_ = m.FillRow(row, model.Hue(base+float64(row)*r.Spread, 1))
	}
}

// Stop is one colour on a Gradient at position Pos in [0,1].
type Stop struct {
	Color colorful.Color
	Pos   float64
}

// Gradient blends between stops in HCL space. Stops must be sorted by Pos.
type Gradient []Stop

// At returns the colour at t; values outside the first and last stop take the
// end colours.
func (g Gradient) At(t float64) colorful.Color {
	if len(g) == 0 {
		return colorful.Color{}
	}
	if t <= g[0].Pos {
		return g[0].Color
	}
	for i := 0; i < len(g)-1; i++ {
		a, b := g[i], g[i+1]
		if a.Pos <= t && t <= b.Pos {
			if b.Pos == a.Pos {
				return b.Color
			}
			return a.Color.BlendHcl(b.Color, (t-a.Pos)/(b.Pos-a.Pos)).Clamped()
		}
	}
	return g[len(g)-1].Color
}

// Ember runs from dark red through orange to a pale yellow.
var Ember = Gradient{
	{colorful.Hsv(0, 1, 0.05), 0},
	{colorful.Hsv(0, 1, 0.8), 0.4},
	{colorful.Hsv(30, 1, 1), 0.75},
	{colorful.Hsv(55, 0.6, 1), 1},
}

// Ocean runs from deep blue to cyan.
var Ocean = Gradient{
	{colorful.Hsv(234, 1, 0.1), 0},
	{colorful.Hsv(220, 1, 0.7), 0.5},
	{colorful.Hsv(190, 0.6, 1), 1},
}

// Noise samples 3D simplex noise over (col, row, time) and colours each cell
// from a gradient.
type Noise struct {
	Gradient Gradient
	// Scale is the noise distance between neighbouring cells.
	Scale float64
	// Speed is the noise distance travelled per second.
	Speed float64

	noise opensimplex.Noise
}

func NewNoise(seed int64, g Gradient) *Noise {
	return &Noise{
		Gradient: g,
		Scale:    0.25,
		Speed:    0.5,
		noise:    opensimplex.NewNormalized(seed),
	}
}

// Value is the normalised noise in [0,1] for one cell.
func (n *Noise) Value(row, col int, t time.Duration) float64 {
	v := n.noise.Eval3(float64(col)*n.Scale, float64(row)*n.Scale, t.Seconds()*n.Speed)
	return math.Max(0, math.Min(1, v))
}

func (n *Noise) Frame(m *matrix.Matrix, t time.Duration) {
	for row := 0; row < model.Rows; row++ {
		for col := 0; col < model.Cols; col++ {
			_ = m.SetPixel(row, col, model.FromColorful(n.Gradient.At(n.Value(row, col, t))))
		}
	}
}

// Pulse fills the matrix with one colour whose value follows a sine wave.
type Pulse struct {
	Color  model.Color
	Period time.Duration
}

func (p *Pulse) Frame(m *matrix.Matrix, t time.Duration) {
	period := p.Period
	if period <= 0 {
		period = 2 * time.Second
	}
	phase := float64(t%period) / float64(period)
	m.Fill(p.Color.Scale((1 - math.Cos(2*math.Pi*phase)) / 2))
}

var registry = map[string]func(seed int64) Effect{
	"rainbow": func(int64) Effect { return NewRainbow() },
	"ember":   func(seed int64) Effect { return NewNoise(seed, Ember) },
	"ocean":   func(seed int64) Effect { return NewNoise(seed, Ocean) },
	"pulse":   func(int64) Effect { return &Pulse{Color: model.Cyan, Period: 2 * time.Second} },
}

// ByName builds a fresh effect. seed only matters for noise effects.
func ByName(name string, seed int64) (Effect, error) {
	mk, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown effect %q", name)
	}
	return mk(seed), nil
}

func Names() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
