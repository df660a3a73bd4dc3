package utils

import (
	"image"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

// ScaleSquare resamples src onto a size x size canvas, stretching it to fill
// the whole canvas regardless of the source aspect ratio.
func ScaleSquare(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(
		dst,
		dst.Bounds(),
		src,
		src.Bounds(),
		draw.Src,
		nil,
	)
	return dst
}

// SwapExt replaces the ext suffix of name's base with newExt.
// "icons/foo.svg", ".svg", ".ico" -> "foo.ico".
func SwapExt(name, ext, newExt string) string {
	return strings.TrimSuffix(filepath.Base(name), ext) + newExt
}

func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
