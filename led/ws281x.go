//go:build ws281x

package led

import (
	"fmt"

	ws2811 "github.com/rpi-ws281x/rpi-ws281x-go"

	"github.com/coreman2200/funtimes-pixiboo/model"
)

// WS281x drives the strip from the Pi's PWM/DMA engine through libws2811.
type WS281x struct {
	dev   pwmDevice
	count int
}

// NewWS281x claims gpio for count LEDs. order is the strip's native channel
// order; frames are always written as RGB and reordered by the library.
func NewWS281x(gpio int, count int, order model.ColorOrder) (*WS281x, error) {
	opt := ws2811.DefaultOptions
	opt.Channels[0].GpioPin = gpio
	opt.Channels[0].LedCount = count
	opt.Channels[0].Brightness = 255
	opt.Channels[0].StripeType = stripType(order)

	dev, err := ws2811.MakeWS2811(&opt)
	if err != nil {
		return nil, fmt.Errorf("ws2811 make: %w", err)
	}
	if err := startPWM(dev); err != nil {
		return nil, err
	}
	return &WS281x{dev: dev, count: count}, nil
}

func stripType(order model.ColorOrder) int {
	switch order {
	case model.OrderRGB:
		return ws2811.WS2811StripRGB
	case model.OrderRBG:
		return ws2811.WS2811StripRBG
	case model.OrderGBR:
		return ws2811.WS2811StripGBR
	case model.OrderBRG:
		return ws2811.WS2811StripBRG
	case model.OrderBGR:
		return ws2811.WS2811StripBGR
	default:
		return ws2811.WS2811StripGRB
	}
}

func (w *WS281x) Write(frame []byte) error {
	return writePWM(w.dev, frame, w.count)
}

func (w *WS281x) Close() error {
	w.dev.Fini()
	return nil
}

func (w *WS281x) ColorOrder() model.ColorOrder { return model.OrderRGB }
