// Package artwork turns vector and bitmap art into 7x7 sprites.
package artwork

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"

	"github.com/coreman2200/funtimes-pixiboo/model"
)

func canvas() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, model.Cols, model.Rows))
}

// RasterSVG scales the SVG's viewBox onto a 7x7 canvas.
func RasterSVG(r io.Reader) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, fmt.Errorf("read svg: %w", err)
	}
	icon.SetTarget(0, 0, model.Cols, model.Rows)
	img := canvas()
	scanner := rasterx.NewScannerGV(model.Cols, model.Rows, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(model.Cols, model.Rows, scanner), 1)
	return img, nil
}

// LoadSVG rasterises an SVG into a sprite. Cells less than half covered are
// off.
func LoadSVG(r io.Reader, name string) (model.Sprite, error) {
	img, err := RasterSVG(r)
	if err != nil {
		return model.Sprite{}, err
	}
	return model.SpriteFromImage(name, img)
}

// LoadImage decodes a PNG, GIF or JPEG and samples it down to 7x7 with
// nearest-neighbour scaling so pixel art keeps hard edges.
func LoadImage(r io.Reader, name string) (model.Sprite, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return model.Sprite{}, fmt.Errorf("decode image: %w", err)
	}
	img := canvas()
	draw.NearestNeighbor.Scale(img, img.Bounds(), src, src.Bounds(), draw.Src, nil)
	return model.SpriteFromImage(name, img)
}

// LoadFile picks the loader by extension. The sprite is named after the file.
func LoadFile(path string) (model.Sprite, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Sprite{}, err
	}
	defer f.Close()

	ext := filepath.Ext(path)
	name := strings.TrimSuffix(filepath.Base(path), ext)
	if strings.EqualFold(ext, ".svg") {
		return LoadSVG(f, name)
	}
	return LoadImage(f, name)
}
