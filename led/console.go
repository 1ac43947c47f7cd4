package led

import (
	"fmt"
	"image"
	"io"

	"github.com/mattn/go-colorable"
	"periph.io/x/extra/devices/screen"

	"github.com/coreman2200/funtimes-pixiboo/model"
)

type drawer interface {
	Bounds() image.Rectangle
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
	Halt() error
}

// Console prints each frame as a row of ANSI colored cells, for running
// without a strip attached.
type Console struct {
	d     drawer
	out   io.Writer // same stdout the screen device draws on
	count int
	order model.ColorOrder
}

func NewConsole(count int, order model.ColorOrder) *Console {
	if !order.Valid() {
		order = model.OrderRGB
	}
	return &Console{
		d:     screen.New(count),
		out:   colorable.NewColorableStdout(),
		count: count,
		order: order,
	}
}

func (c *Console) Write(frame []byte) error {
	if err := checkLen(frame, c.count); err != nil {
		return err
	}
	if err := c.d.Draw(c.d.Bounds(), frameImage(frame, c.order), image.Point{}); err != nil {
		return fmt.Errorf("console draw: %w", err)
	}
	// the screen redraws in place; a newline keeps one line per frame
	if _, err := io.WriteString(c.out, "\n"); err != nil {
		return fmt.Errorf("console write: %w", err)
	}
	return nil
}

func (c *Console) Close() error { return c.d.Halt() }

func (c *Console) ColorOrder() model.ColorOrder { return c.order }

// frameImage lays a wire-ordered frame out as a 1-pixel-high strip image.
func frameImage(frame []byte, order model.ColorOrder) *image.NRGBA {
	n := len(frame) / 3
	im := image.NewNRGBA(image.Rect(0, 0, n, 1))
	for x := 0; x < n; x++ {
		var c model.Color
		for i := 0; i < 3; i++ {
			v := frame[x*3+i]
			switch order[i] {
			case 'R':
				c.R = v
			case 'G':
				c.G = v
			case 'B':
				c.B = v
			}
		}
		im.SetNRGBA(x, 0, c.NRGBA())
	}
	return im
}
