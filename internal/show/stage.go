package show

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-pixiboo/internal/effects"
	"github.com/coreman2200/funtimes-pixiboo/matrix"
	"github.com/coreman2200/funtimes-pixiboo/model"
)

// DefaultStep is the time per scroll or marquee step.
const DefaultStep = 0.15

type painter func(m *matrix.Matrix, t float64)

// compile turns a clip into a painter, rejecting unknown names.
func compile(c Clip, seed int64) (painter, error) {
	switch c.Kind {
	case KindSprite:
		s, err := clipSprite(c.Sprite, c.Color)
		if err != nil {
			return nil, err
		}
		return func(m *matrix.Matrix, _ float64) { m.Draw(s) }, nil

	case KindEffect:
		e, err := effects.ByName(c.Effect, seed)
		if err != nil {
			return nil, err
		}
		return func(m *matrix.Matrix, t float64) {
			e.Frame(m, time.Duration(t*float64(time.Second)))
		}, nil

	case KindFill:
		col, ok := model.Named(c.Color)
		if !ok {
			return nil, fmt.Errorf("unknown color %q", c.Color)
		}
		return func(m *matrix.Matrix, _ float64) { m.Fill(col) }, nil

	case KindScroll:
		s, err := clipSprite(c.Sprite, c.Color)
		if err != nil {
			return nil, err
		}
		move, err := direction(c.Dir)
		if err != nil {
			return nil, err
		}
		step := stepOf(c)
		return func(m *matrix.Matrix, t float64) {
			m.Draw(s)
			n := int(t / step)
			if n > model.Cols {
				n = model.Cols
			}
			for i := 0; i < n; i++ {
				move(m)
			}
		}, nil

	case KindMarquee:
		if len(c.Sprites) == 0 {
			return nil, fmt.Errorf("marquee needs sprites")
		}
		var strip [][model.Rows]model.Color
		for _, name := range c.Sprites {
			s, err := clipSprite(name, c.Color)
			if err != nil {
				return nil, err
			}
			strip = appendColumns(strip, s)
		}
		step := stepOf(c)
		return func(m *matrix.Matrix, t float64) {
			paintMarquee(m, strip, int(t/step))
		}, nil

	default:
		return nil, fmt.Errorf("unknown clip kind %q", c.Kind)
	}
}

func clipSprite(name, tint string) (model.Sprite, error) {
	s, ok := model.SpriteByName(name)
	if !ok {
		return model.Sprite{}, fmt.Errorf("unknown sprite %q", name)
	}
	if tint == "" {
		return s, nil
	}
	c, ok := model.Named(tint)
	if !ok {
		return model.Sprite{}, fmt.Errorf("unknown color %q", tint)
	}
	return s.Tint(c), nil
}

func direction(dir string) (func(*matrix.Matrix), error) {
	switch strings.ToLower(dir) {
	case "left", "":
		return (*matrix.Matrix).ScrollLeft, nil
	case "right":
		return (*matrix.Matrix).ScrollRight, nil
	case "up":
		return (*matrix.Matrix).ScrollUp, nil
	case "down":
		return (*matrix.Matrix).ScrollDown, nil
	}
	return nil, fmt.Errorf("unknown scroll direction %q", dir)
}

func stepOf(c Clip) float64 {
	if c.StepS > 0 {
		return c.StepS
	}
	return DefaultStep
}

// appendColumns adds the sprite's columns plus one blank spacer column.
func appendColumns(strip [][model.Rows]model.Color, s model.Sprite) [][model.Rows]model.Color {
	for col := 0; col <= model.Cols; col++ {
		var column [model.Rows]model.Color
		if col < model.Cols {
			for row := 0; row < model.Rows; row++ {
				column[row] = s.At(row, col)
			}
		}
		strip = append(strip, column)
	}
	return strip
}

// paintMarquee shows the strip after k columns have entered from the right.
// The strip repeats once it has fully left the display.
func paintMarquee(m *matrix.Matrix, strip [][model.Rows]model.Color, k int) {
	k %= len(strip) + model.Cols
	for col := 0; col < model.Cols; col++ {
		src := k + col - model.Cols
		for row := 0; row < model.Rows; row++ {
			c := model.Off
			if src >= 0 && src < len(strip) {
				c = strip[src][row]
			}
			_ = m.SetPixel(row, col, c)
		}
	}
}

// Stage paints clips onto a matrix. It implements the Player hooks.
type Stage struct {
	m    *matrix.Matrix
	seed int64
	base float64

	active painter
	armed  painter
	alpha  float64
	blank  bool
}

func NewStage(m *matrix.Matrix, seed int64) *Stage {
	return &Stage{m: m, seed: seed, base: m.Brightness()}
}

func (s *Stage) Hooks() Hooks {
	return Hooks{
		SetClip:      s.setClip,
		SetParam:     s.setParam,
		SetFlag:      s.setFlag,
		ArmNext:      s.armNext,
		SetCrossfade: func(a float64) { s.alpha = a },
	}
}

func (s *Stage) setClip(c Clip) {
	p, err := compile(c, s.seed)
	if err != nil {
		log.Warn().Err(err).Str("clip", c.Name).Msg("clip skipped")
		p = func(m *matrix.Matrix, _ float64) { m.Clear() }
	}
	s.active = p
	s.armed = nil
	s.blank = false
	if _, ok := c.Params[ParamBrightness]; !ok {
		_ = s.m.SetBrightness(s.base)
	}
}

func (s *Stage) armNext(c Clip) {
	p, err := compile(c, s.seed)
	if err != nil {
		log.Warn().Err(err).Str("clip", c.Name).Msg("crossfade target skipped")
		return
	}
	s.armed = p
}

func (s *Stage) setParam(name string, v float64) {
	switch name {
	case ParamBrightness:
		if err := s.m.SetBrightness(v); err != nil {
			log.Debug().Err(err).Msg("brightness envelope")
		}
	default:
		log.Debug().Str("param", name).Msg("unknown param")
	}
}

func (s *Stage) setFlag(name string, b bool) {
	if name == FlagBlank {
		s.blank = b
	}
}

// Paint draws the active clip at local time t, mixed with the armed clip
// while a crossfade is running.
func (s *Stage) Paint(t float64) {
	if s.active == nil {
		return
	}
	if s.blank {
		s.m.Clear()
		return
	}
	s.active(s.m, t)
	if s.armed == nil || s.alpha <= 0 {
		return
	}
	from := s.m.Snapshot()
	s.armed(s.m, 0)
	to := s.m.Snapshot()
	for i, px := range from {
		_ = s.m.SetPixel(px.Coord.Row, px.Coord.Col, model.Blend(px.Color, to[i].Color, s.alpha))
	}
}
