package main

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/physic"

	"github.com/coreman2200/funtimes-pixiboo/internal/button"
	"github.com/coreman2200/funtimes-pixiboo/internal/buzzer"
	"github.com/coreman2200/funtimes-pixiboo/internal/light"
	"github.com/coreman2200/funtimes-pixiboo/internal/loop"
	"github.com/coreman2200/funtimes-pixiboo/model"
)

type eyeStep struct {
	left, right bool
	frames      int // at eyeFPS
}

var eyeFPS = 5

// eyeRoutine: both, off, left, both, right, off, five blinks, five winks.
func eyeRoutine() []eyeStep {
	steps := []eyeStep{
		{true, true, 5}, {false, false, 3},
		{true, false, 5}, {true, true, 5}, {false, true, 5}, {false, false, 3},
	}
	for i := 0; i < 5; i++ {
		steps = append(steps, eyeStep{true, true, 1}, eyeStep{false, false, 1})
	}
	for i := 0; i < 5; i++ {
		steps = append(steps, eyeStep{true, false, 1}, eyeStep{false, true, 1})
	}
	return append(steps, eyeStep{false, false, 1})
}

// Eye positions mirrored on the matrix, so the routine shows without the
// eye LEDs too.
var (
	leftEye  = model.Coord{Row: 1, Col: 1}
	rightEye = model.Coord{Row: 1, Col: 5}
)

func (a *app) blinkEyes(ctx context.Context) error {
	e := a.board.eyes
	if e == nil {
		log.Warn().Msg("no eye LEDs; mirroring on the matrix only")
	}
	steps := eyeRoutine()
	i, held := 0, 0
	return a.frames(ctx, eyeFPS, func(time.Duration, time.Duration) error {
		if i == len(steps) {
			return loop.ErrDone
		}
		s := steps[i]
		if e != nil {
			if err := e.SetLeft(s.left); err != nil {
				return err
			}
			if err := e.SetRight(s.right); err != nil {
				return err
			}
		}
		a.m.Clear()
		for _, eye := range []struct {
			at model.Coord
			on bool
		}{{leftEye, s.left}, {rightEye, s.right}} {
			if eye.on {
				_ = a.m.SetPixel(eye.at.Row, eye.at.Col, model.Cyan)
			}
		}
		if held++; held >= s.frames {
			i, held = i+1, 0
		}
		return a.m.Show()
	})
}

const shakeFlash = 100 * time.Millisecond

var shakeChirp = []buzzer.Note{
	{Freq: 880 * physic.Hertz, Dur: 50 * time.Millisecond},
	{Freq: 1047 * physic.Hertz, Dur: 50 * time.Millisecond},
	{Freq: 1319 * physic.Hertz, Dur: 50 * time.Millisecond},
}

// shake fills the matrix with a colour picked by the buttons (left red,
// center green, right blue) and blinks it off on every shake.
func (a *app) shake(ctx context.Context) error {
	acc := a.board.imu
	if acc == nil {
		log.Warn().Msg("no accelerometer; only the buttons will do anything")
	} else {
		log.Info().Msg("calibrating, keep the board flat and still")
		if err := acc.Calibrate(); err != nil {
			return err
		}
		log.Debug().Interface("offset", acc.Offset()).Msg("calibrated")
	}
	picks := map[button.Name]model.Color{
		button.Left:   model.Red,
		button.Center: model.Green,
		button.Right:  model.Blue,
	}
	cur, count := model.Red, 0
	flashUntil := time.Duration(-1)
	events := a.board.events()
	return a.frames(ctx, a.cfg.FPS, func(t, _ time.Duration) error {
		for drained := false; !drained; {
			select {
			case e := <-events:
				if c, ok := picks[e.Button]; ok && e.Pressed {
					cur = c
					a.board.click(ctx)
				}
			default:
				drained = true
			}
		}
		shaken := false
		if acc != nil {
			var err error
			if shaken, err = acc.WasShaken(); err != nil {
				log.Debug().Err(err).Msg("shake poll")
			}
		}
		if shaken {
			count++
			flashUntil = t + shakeFlash
			log.Info().Int("count", count).Msg("shaken")
		}
		if t < flashUntil {
			a.m.Clear()
		} else {
			a.m.Fill(cur)
		}
		if err := a.m.Show(); err != nil {
			return err
		}
		if shaken {
			a.board.play(ctx, shakeChirp)
		}
		return nil
	})
}

var errNoLight = errors.New("no light sensor")

// lightLevel shows the heart with brightness following the room light.
func (a *app) lightLevel(ctx context.Context) error {
	s := a.board.light
	if s == nil {
		return errNoLight
	}
	top := a.m.Brightness()
	defer a.m.SetBrightness(top)
	a.m.Draw(model.Heart)
	return a.frames(ctx, 10, func(time.Duration, time.Duration) error {
		level, err := s.Read()
		if err != nil {
			return err
		}
		if err := a.m.SetBrightness(light.Brightness(level)); err != nil {
			return err
		}
		log.Debug().Int("level", level).Float64("percent", light.Percent(level)).Msg("light")
		return a.m.Show()
	})
}
