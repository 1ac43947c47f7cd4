package main

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-pixiboo/internal/artwork"
	"github.com/coreman2200/funtimes-pixiboo/internal/button"
	"github.com/coreman2200/funtimes-pixiboo/internal/calib"
	"github.com/coreman2200/funtimes-pixiboo/internal/config"
	"github.com/coreman2200/funtimes-pixiboo/internal/effects"
	"github.com/coreman2200/funtimes-pixiboo/internal/loop"
	"github.com/coreman2200/funtimes-pixiboo/internal/show"
	"github.com/coreman2200/funtimes-pixiboo/layout"
	"github.com/coreman2200/funtimes-pixiboo/led"
	"github.com/coreman2200/funtimes-pixiboo/matrix"
	"github.com/coreman2200/funtimes-pixiboo/model"
)

type app struct {
	m     *matrix.Matrix
	drv   led.Driver
	amap  *layout.AddressMap
	cfg   *config.Config
	board *board
	opts  options
}

func (a *app) run(ctx context.Context) error {
	switch a.opts.demo {
	case "heart":
		return a.still(ctx, model.Heart)
	case "art":
		s, err := artwork.LoadFile(a.opts.art)
		if err != nil {
			return err
		}
		return a.still(ctx, s)
	case "rainbow":
		return a.animate(ctx, effects.NewRainbow())
	case "effect":
		e, err := effects.ByName(a.opts.effect, a.opts.seed)
		if err != nil {
			return err
		}
		return a.animate(ctx, e)
	case "brightness":
		return a.brightness(ctx)
	case "move":
		return a.move(ctx)
	case "marquee":
		return a.play(ctx, marquee())
	case "show":
		if a.opts.show == "" {
			return fmt.Errorf("no show file: set -show or show: in config")
		}
		prog, err := show.LoadFile(a.opts.show)
		if err != nil {
			return err
		}
		return a.play(ctx, prog)
	case "calib":
		return a.calibrate(ctx)
	case "eyes":
		return a.blinkEyes(ctx)
	case "shake":
		return a.shake(ctx)
	case "light":
		return a.lightLevel(ctx)
	}
	return fmt.Errorf("unknown demo %q", a.opts.demo)
}

func (a *app) frames(ctx context.Context, fps int, f loop.Frame) error {
	l := loop.New(fps, f)
	return l.Run(ctx)
}

// still renders once and waits.
func (a *app) still(ctx context.Context, s model.Sprite) error {
	a.m.Draw(s)
	if err := a.m.Show(); err != nil {
		return err
	}
	log.Info().Str("sprite", s.Name()).Int("lit", s.Lit()).Msg("showing")
	<-ctx.Done()
	return nil
}

func (a *app) animate(ctx context.Context, e effects.Effect) error {
	return a.frames(ctx, a.cfg.FPS, func(t, _ time.Duration) error {
		e.Frame(a.m, t)
		return a.m.Show()
	})
}

// brightness breathes the heart between off and the configured level.
func (a *app) brightness(ctx context.Context) error {
	top := a.m.Brightness()
	defer a.m.SetBrightness(top)
	a.m.Draw(model.Heart)
	const period = 4 * time.Second
	return a.frames(ctx, a.cfg.FPS, func(t, _ time.Duration) error {
		phase := float64(t%period) / float64(period)
		if err := a.m.SetBrightness(top * (1 - math.Cos(2*math.Pi*phase)) / 2); err != nil {
			return err
		}
		return a.m.Show()
	})
}

var palette = []model.Color{model.Cyan, model.Orange, model.Purple, model.Pink, model.Green}

// move steers one pixel with the buttons: left and right move it along the
// row, wrapping into the neighbouring row, and center changes its colour.
func (a *app) move(ctx context.Context) error {
	if a.board.buttons == nil {
		log.Warn().Msg("no buttons; the pixel will sit still")
	}
	pos, ci := model.LedCount/2, 0
	events := a.board.events()
	return a.frames(ctx, a.cfg.FPS, func(time.Duration, time.Duration) error {
		for drained := false; !drained; {
			select {
			case e := <-events:
				if !e.Pressed {
					continue
				}
				switch e.Button {
				case button.Left:
					pos = (pos + model.LedCount - 1) % model.LedCount
				case button.Right:
					pos = (pos + 1) % model.LedCount
				case button.Center:
					ci = (ci + 1) % len(palette)
				}
				a.board.click(ctx)
			default:
				drained = true
			}
		}
		a.m.Clear()
		if err := a.m.SetPixel(pos/model.Cols, pos%model.Cols, palette[ci]); err != nil {
			return err
		}
		return a.m.Show()
	})
}

func marquee() show.Program {
	return show.Program{
		Version: show.Version,
		Loop:    true,
		Clips: []show.Clip{{
			Name:      "marquee",
			Kind:      show.KindMarquee,
			Sprites:   model.SpriteNames(),
			StepS:     0.12,
			DurationS: 0.12 * float64(len(model.SpriteNames())*(model.Cols+1)+model.Cols),
		}},
	}
}

func (a *app) play(ctx context.Context, prog show.Program) error {
	s, err := show.New(a.m, prog)
	if err != nil {
		return err
	}
	s.Start()
	return a.frames(ctx, a.cfg.FPS, func(_, dt time.Duration) error {
		if !s.Tick(dt.Seconds()) {
			return loop.ErrDone
		}
		return a.m.Show()
	})
}

// calibrate writes raw strip frames, bypassing the matrix and its brightness.
func (a *app) calibrate(ctx context.Context) error {
	kind, err := calib.ParseKind(a.opts.calib)
	if err != nil {
		return err
	}
	r := calib.NewRunner(calib.Plan{Kind: kind, Order: led.OrderOf(a.drv)}, a.amap)
	frame := make([]byte, model.FrameSize)
	log.Info().Str("pattern", string(kind)).Int("steps", r.Steps()).Msg("calibration")
	step := 0
	return a.frames(ctx, 4, func(time.Duration, time.Duration) error {
		if !r.Step(frame) {
			return loop.ErrDone
		}
		log.Debug().Int("step", step).Msg("calibration frame")
		step++
		return a.drv.Write(frame)
	})
}
