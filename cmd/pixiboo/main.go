package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/physic"

	"github.com/coreman2200/funtimes-pixiboo/internal/config"
	"github.com/coreman2200/funtimes-pixiboo/layout"
	"github.com/coreman2200/funtimes-pixiboo/led"
	"github.com/coreman2200/funtimes-pixiboo/matrix"
	"github.com/coreman2200/funtimes-pixiboo/model"
)

type options struct {
	demo   string
	effect string
	calib  string
	art    string
	show   string
	melody string
	seed   int64
}

func main() {
	// ---- Flags (config.yaml overrides where set) ----
	var (
		driver     = flag.String("driver", "sim", "driver: spi | pwm | console | sim")
		gpio       = flag.Int("gpio", 18, "PWM data pin (BCM number) for rpi_ws281x")
		colorOrder = flag.String("color", "GRB", "LED color order (e.g. GRB, RGB)")
		wiring     = flag.String("wiring", "pixiboo", "wiring: pixiboo | serpentine | progressive")
		brightness = flag.Float64("brightness", model.DefaultBrightness, "global brightness 0..1")
		fps        = flag.Int("fps", 30, "target frames per second")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		simOnly    = flag.Bool("sim-only", false, "force simulation (no hardware output)")
		verbose    = flag.Bool("v", false, "debug logging")

		opts options
	)
	flag.StringVar(&opts.demo, "demo", "heart", "demo: heart | rainbow | effect | brightness | move | marquee | show | calib | art | eyes | shake | light")
	flag.StringVar(&opts.effect, "effect", "ember", "effect for -demo effect")
	flag.StringVar(&opts.calib, "calib", "index_sweep", "pattern for -demo calib: index_sweep | rgb_channels | row_sweep | col_sweep")
	flag.StringVar(&opts.art, "art", "", "svg/png file for -demo art")
	flag.StringVar(&opts.show, "show", "", "program file for -demo show (overrides config)")
	flag.StringVar(&opts.melody, "melody", "C5:120 E5:120 G5:240", "melody played on the buzzer at start, empty for silence")
	flag.Int64Var(&opts.seed, "seed", time.Now().UnixNano(), "noise seed")
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	// ---- Load config.yaml (optional) ----
	cfg := config.Default()
	cfg.Driver, cfg.GPIO, cfg.ColorOrder = *driver, *gpio, *colorOrder
	cfg.Wiring, cfg.Brightness, cfg.FPS = *wiring, *brightness, *fps
	if _, err := os.Stat(*configPath); err == nil {
		c, err := config.Load(*configPath)
		if err != nil {
			log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
		} else {
			cfg = mergeFlags(c, flagsSet())
		}
	}
	if *simOnly {
		cfg.Driver = "sim"
	}
	if opts.show == "" {
		opts.show = cfg.Show
	}

	order, err := model.ParseColorOrder(cfg.ColorOrder)
	if err != nil {
		log.Fatal().Err(err).Msg("color order")
	}
	w, err := layout.ParseWiring(cfg.Wiring)
	if err != nil {
		log.Fatal().Err(err).Msg("wiring")
	}

	drv, selected := openDriver(cfg, order)
	amap := layout.MustNew(w)
	m, err := matrix.New(drv, amap)
	if err != nil {
		log.Fatal().Err(err).Msg("matrix")
	}
	if err := m.SetBrightness(cfg.Brightness); err != nil {
		log.Warn().Err(err).Float64("brightness", cfg.Brightness).Msg("keeping default brightness")
	}
	log.Info().
		Str("driver", selected).
		Str("wiring", cfg.Wiring).
		Str("order", string(m.ColorOrder())).
		Float64("brightness", m.Brightness()).
		Str("demo", opts.demo).
		Msg("pixiboo starting")

	// ---- Graceful shutdown ----
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	board := openBoard(ctx, cfg, opts.melody)
	defer board.Close()

	a := &app{m: m, drv: drv, amap: amap, cfg: cfg, board: board, opts: opts}
	if err := a.run(ctx); err != nil {
		log.Error().Err(err).Str("demo", opts.demo).Msg("demo failed")
	}
	log.Info().Msg("shutting down")
	if err := m.Close(); err != nil {
		log.Warn().Err(err).Msg("driver close")
	}
}

// flagsSet reports the flags given explicitly on the command line.
func flagsSet() map[string]bool {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// mergeFlags lets explicit flags win over the config file.
func mergeFlags(c *config.Config, set map[string]bool) *config.Config {
	get := func(name string) string { return flag.Lookup(name).Value.String() }
	if set["driver"] {
		c.Driver = get("driver")
	}
	if set["color"] {
		c.ColorOrder = get("color")
	}
	if set["wiring"] {
		c.Wiring = get("wiring")
	}
	if set["gpio"] {
		c.GPIO = flag.Lookup("gpio").Value.(flag.Getter).Get().(int)
	}
	if set["brightness"] {
		c.Brightness = flag.Lookup("brightness").Value.(flag.Getter).Get().(float64)
	}
	if set["fps"] {
		c.FPS = flag.Lookup("fps").Value.(flag.Getter).Get().(int)
	}
	return c
}

// openDriver never fails: hardware that cannot be opened falls back to SIM.
func openDriver(cfg *config.Config, order model.ColorOrder) (led.Driver, string) {
	sim := func() led.Driver {
		s := led.NewSim(model.LedCount)
		s.Order = order
		return s
	}

	switch cfg.Driver {
	case "sim":
		return sim(), "sim"

	case "console":
		return led.NewConsole(model.LedCount, order), "console"

	case "spi":
		if err := led.InitHost(); err != nil {
			log.Warn().Err(err).Msg("periph host init failed; falling back to SIM")
			return sim(), "sim"
		}
		freq := led.DefaultFreq
		if cfg.SPI.SpeedHz > 0 {
			freq = physic.Frequency(cfg.SPI.SpeedHz) * physic.Hertz
		}
		drv, err := led.OpenNRZ(cfg.SPI.Bus, model.LedCount, freq)
		if err != nil {
			log.Warn().Err(err).
				Str("driver", "spi").
				Str("bus", cfg.SPI.Bus).
				Int("speed_hz", cfg.SPI.SpeedHz).
				Msg("SPI init failed; falling back to SIM")
			return sim(), "sim"
		}
		return drv, "spi"

	case "pwm":
		drv, err := led.NewWS281x(cfg.GPIO, model.LedCount, order)
		if err != nil {
			log.Warn().Err(err).Int("gpio", cfg.GPIO).Msg("PWM init failed; falling back to SIM")
			return sim(), "sim"
		}
		return drv, "pwm"

	default:
		log.Warn().Str("driver", cfg.Driver).Msg("unknown driver; using SIM")
		return sim(), "sim"
	}
}
