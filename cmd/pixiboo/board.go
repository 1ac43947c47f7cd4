package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/physic"

	"github.com/coreman2200/funtimes-pixiboo/internal/button"
	"github.com/coreman2200/funtimes-pixiboo/internal/buzzer"
	"github.com/coreman2200/funtimes-pixiboo/internal/config"
	"github.com/coreman2200/funtimes-pixiboo/internal/eyes"
	"github.com/coreman2200/funtimes-pixiboo/internal/imu"
	"github.com/coreman2200/funtimes-pixiboo/internal/light"
	"github.com/coreman2200/funtimes-pixiboo/led"
)

// board holds the optional peripherals. Any field may be nil.
type board struct {
	buttons *button.Buttons
	buzzer  *buzzer.Buzzer
	eyes    *eyes.Eyes
	imu     *imu.IMU
	light   *light.Sensor
}

func openBoard(ctx context.Context, cfg *config.Config, melody string) *board {
	b := &board{}
	if cfg.Driver == "sim" {
		return b
	}

	pins := button.Pins{Left: cfg.Buttons.Left, Center: cfg.Buttons.Center, Right: cfg.Buttons.Right}
	debounce := time.Duration(cfg.Buttons.DebounceMs) * time.Millisecond
	if btn, err := button.Open(cfg.Buttons.Chip, pins, debounce); err != nil {
		log.Warn().Err(err).Str("chip", cfg.Buttons.Chip).Msg("buttons unavailable")
	} else {
		b.buttons = btn
	}

	if err := led.InitHost(); err != nil {
		log.Warn().Err(err).Msg("periph host init failed; no buzzer, eyes or sensors")
		return b
	}
	b.openPeriph(cfg)

	if b.buzzer == nil || melody == "" {
		return b
	}
	notes, err := buzzer.ParseMelody(melody)
	if err != nil {
		log.Warn().Err(err).Msg("bad melody")
		return b
	}
	if err := b.buzzer.Play(ctx, notes); err != nil {
		log.Debug().Err(err).Msg("melody interrupted")
	}
	return b
}

// openPeriph opens the periph-backed parts; each one that fails is logged
// and left nil.
func (b *board) openPeriph(cfg *config.Config) {
	if bz, err := buzzer.Open(cfg.Buzzer.Pin); err != nil {
		log.Warn().Err(err).Str("pin", cfg.Buzzer.Pin).Msg("buzzer unavailable")
	} else {
		b.buzzer = bz
	}

	if e, err := eyes.Open(cfg.Eyes.Left, cfg.Eyes.Right); err != nil {
		log.Warn().Err(err).Str("left", cfg.Eyes.Left).Str("right", cfg.Eyes.Right).Msg("eyes unavailable")
	} else {
		b.eyes = e
	}

	if m, err := imu.Open(cfg.IMU.Bus); err != nil {
		log.Warn().Err(err).Str("bus", cfg.IMU.Bus).Msg("accelerometer unavailable")
	} else {
		m.SetShakeThreshold(cfg.IMU.ShakeMg)
		log.Info().Str("chip", string(m.Chip())).Int("shake_mg", m.ShakeThreshold()).Msg("accelerometer found")
		b.imu = m
	}

	if s, err := light.Open(cfg.Light.Bus, cfg.Light.Addr, cfg.Light.Channel); err != nil {
		log.Warn().Err(err).Uint16("addr", cfg.Light.Addr).Msg("light sensor unavailable")
	} else {
		b.light = s
	}
}

// events is nil without buttons; receiving from it blocks forever.
func (b *board) events() <-chan button.Event {
	if b.buttons == nil {
		return nil
	}
	return b.buttons.Events()
}

func (b *board) click(ctx context.Context) {
	if b.buzzer == nil {
		return
	}
	if err := b.buzzer.Tone(ctx, 2*physic.KiloHertz, 15*time.Millisecond); err != nil {
		log.Debug().Err(err).Msg("click")
	}
}

func (b *board) play(ctx context.Context, notes []buzzer.Note) {
	if b.buzzer == nil {
		return
	}
	if err := b.buzzer.Play(ctx, notes); err != nil {
		log.Debug().Err(err).Msg("play")
	}
}

func (b *board) Close() {
	if b.buttons != nil {
		if err := b.buttons.Close(); err != nil {
			log.Warn().Err(err).Msg("buttons close")
		}
	}
	if b.buzzer != nil {
		_ = b.buzzer.Stop()
	}
	if b.eyes != nil {
		if err := b.eyes.Off(); err != nil {
			log.Warn().Err(err).Msg("eyes off")
		}
	}
	if b.imu != nil {
		if err := b.imu.Close(); err != nil {
			log.Warn().Err(err).Msg("accelerometer close")
		}
	}
	if b.light != nil {
		if err := b.light.Close(); err != nil {
			log.Warn().Err(err).Msg("light sensor close")
		}
	}
}
