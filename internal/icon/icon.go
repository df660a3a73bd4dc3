// Package icon packs square rasters into a Windows ICO container.
package icon

import (
	"image"
	"io"

	"github.com/tc-hib/winres"
	"golang.org/x/xerrors"
)

// MaxSize is the largest edge an ICO directory entry can describe.
const MaxSize = 256

type Encoder interface {
	Encode(w io.Writer, images []image.Image) error
}

// Winres encodes with github.com/tc-hib/winres. Every entry is stored as a
// 32bpp PNG and the directory is written largest first, whatever the input order.
type Winres struct{}

func (Winres) Encode(w io.Writer, images []image.Image) error {
	if err := Check(images); err != nil {
		return err
	}

	ico, err := winres.NewIconFromImages(images)
	if err != nil {
		return xerrors.Errorf("build icon: %w", err)
	}
	if err := ico.SaveICO(w); err != nil {
		return xerrors.Errorf("write icon: %w", err)
	}
	return nil
}

// Check reports whether images can be stored in one ICO: at least one
// image, each square, at most MaxSize, and no two of the same size.
func Check(images []image.Image) error {
	if len(images) == 0 {
		return xerrors.New("no images to encode")
	}

	seen := make(map[int]bool, len(images))
	for i, img := range images {
		if img == nil {
			return xerrors.Errorf("image %d is nil", i)
		}
		b := img.Bounds()
		if b.Dx() != b.Dy() {
			return xerrors.Errorf("image %d is %dx%d, want a square", i, b.Dx(), b.Dy())
		}
		if b.Dx() < 1 || b.Dx() > MaxSize {
			return xerrors.Errorf("image %d is %dpx, want 1 to %d", i, b.Dx(), MaxSize)
		}
		if seen[b.Dx()] {
			return xerrors.Errorf("duplicate %dpx image", b.Dx())
		}
		seen[b.Dx()] = true
	}
	return nil
}
