// Package raster renders SVG documents to square bitmaps.
package raster

import (
	"bytes"
	"context"
	"image"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/xerrors"

	"github.com/hoppxi/svgico/internal/utils"
)

// Rasterizer renders one SVG document at one square pixel size.
// Implementations must be safe for concurrent use.
type Rasterizer interface {
	Rasterize(ctx context.Context, svg []byte, size int) (image.Image, error)
}

// ParseErrorMode maps a svg_errors config value to an oksvg error mode.
func ParseErrorMode(s string) (oksvg.ErrorMode, error) {
	switch s {
	case "strict":
		return oksvg.StrictErrorMode, nil
	case "warn", "":
		return oksvg.WarnErrorMode, nil
	case "ignore":
		return oksvg.IgnoreErrorMode, nil
	}
	return 0, xerrors.Errorf("unknown svg error mode %q (want strict, warn or ignore)", s)
}

// OKSVG renders with srwiley/oksvg. The image is always scaled to exactly
// size x size, ignoring the document's aspect ratio.
type OKSVG struct {
	ErrorMode oksvg.ErrorMode
	// Supersample > 1 renders at size*Supersample and resamples down.
	Supersample int
}

func (o OKSVG) Rasterize(ctx context.Context, svg []byte, size int) (img image.Image, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, xerrors.Errorf("invalid size %d", size)
	}

	// oksvg panics on some malformed path data.
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, xerrors.Errorf("render svg: %v", r)
		}
	}()

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), o.ErrorMode)
	if err != nil {
		return nil, xerrors.Errorf("parse svg: %w", err)
	}

	target := size * utils.MaxInt(o.Supersample, 1)
	icon.SetTarget(0, 0, float64(target), float64(target))

	rgba := image.NewRGBA(image.Rect(0, 0, target, target))
	scanner := rasterx.NewScannerGV(target, target, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(target, target, scanner)
	icon.Draw(raster, 1.0)

	if target == size {
		return rgba, nil
	}
	return utils.ScaleSquare(rgba, size), nil
}
