//go:build !ws281x

package led

import (
	"fmt"

	"github.com/coreman2200/funtimes-pixiboo/model"
)

type WS281x struct{}

func NewWS281x(gpio int, count int, order model.ColorOrder) (*WS281x, error) {
	return nil, fmt.Errorf("ws281x driver not compiled in (build with -tags ws281x)")
}

func (w *WS281x) Write(frame []byte) error {
	return fmt.Errorf("ws281x driver not compiled in")
}

func (w *WS281x) Close() error { return nil }
