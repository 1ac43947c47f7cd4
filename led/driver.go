package led

import (
	"fmt"

	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-pixiboo/model"
)

// Driver abstracts an LED output sink.
type Driver interface {
	// Write pushes a frame to hardware. len(frame) must be 3*N, ordered by
	// strip index.
	Write(frame []byte) error
	// Close releases resources.
	Close() error
}

// Ordered is implemented by drivers that need frames in a specific channel
// order. Drivers that reorder on their own report RGB.
type Ordered interface {
	ColorOrder() model.ColorOrder
}

// OrderOf returns the channel order a driver expects, RGB by default.
func OrderOf(d Driver) model.ColorOrder {
	if o, ok := d.(Ordered); ok && o.ColorOrder().Valid() {
		return o.ColorOrder()
	}
	return model.OrderRGB
}

// InitHost loads the periph host drivers (SPI, GPIO). Safe to call repeatedly.
func InitHost() error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("periph host init: %w", err)
	}
	return nil
}

func checkLen(frame []byte, count int) error {
	if len(frame) != count*3 {
		return fmt.Errorf("frame length %d does not match count %d", len(frame), count)
	}
	return nil
}
