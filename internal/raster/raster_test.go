package raster

import (
	"context"
	"image/color"
	"testing"

	"github.com/srwiley/oksvg"
	"github.com/stretchr/testify/require"
)

const redSquare = `<svg xmlns="http://www.w3.org/2000/svg" width="16" height="16" viewBox="0 0 16 16">
<rect x="0" y="0" width="16" height="16" fill="#FF0000"/>
</svg>`

const wideBanner = `<svg xmlns="http://www.w3.org/2000/svg" width="64" height="16" viewBox="0 0 64 16">
<rect x="0" y="0" width="64" height="16" fill="#0000FF"/>
</svg>`

func requireColor(t *testing.T, c color.Color, want color.NRGBA) {
	t.Helper()
	got := color.NRGBAModel.Convert(c).(color.NRGBA)
	require.InDelta(t, want.R, got.R, 8, "red")
	require.InDelta(t, want.G, got.G, 8, "green")
	require.InDelta(t, want.B, got.B, 8, "blue")
	require.InDelta(t, want.A, got.A, 8, "alpha")
}

func TestOKSVGRasterize(t *testing.T) {
	t.Parallel()

	r := OKSVG{ErrorMode: oksvg.WarnErrorMode}
	for _, size := range []int{16, 24, 32, 48, 64, 128, 256} {
		img, err := r.Rasterize(context.Background(), []byte(redSquare), size)
		require.NoError(t, err)
		require.Equal(t, size, img.Bounds().Dx())
		require.Equal(t, size, img.Bounds().Dy())
		requireColor(t, img.At(size/2, size/2), color.NRGBA{R: 255, A: 255})
	}
}

func TestOKSVGForcesSquare(t *testing.T) {
	t.Parallel()

	img, err := OKSVG{}.Rasterize(context.Background(), []byte(wideBanner), 32)
	require.NoError(t, err)
	require.Equal(t, 32, img.Bounds().Dx())
	require.Equal(t, 32, img.Bounds().Dy())

	// Stretched, not letterboxed: the top and bottom rows are painted too.
	requireColor(t, img.At(16, 1), color.NRGBA{B: 255, A: 255})
	requireColor(t, img.At(16, 30), color.NRGBA{B: 255, A: 255})
}

func TestOKSVGSupersample(t *testing.T) {
	t.Parallel()

	img, err := OKSVG{Supersample: 4}.Rasterize(context.Background(), []byte(redSquare), 24)
	require.NoError(t, err)
	require.Equal(t, 24, img.Bounds().Dx())
	require.Equal(t, 24, img.Bounds().Dy())
	requireColor(t, img.At(12, 12), color.NRGBA{R: 255, A: 255})
}

func TestOKSVGErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, err := OKSVG{}.Rasterize(ctx, []byte("not an svg <"), 16)
	require.Error(t, err)

	_, err = OKSVG{}.Rasterize(ctx, []byte(redSquare), 0)
	require.ErrorContains(t, err, "invalid size")

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = OKSVG{}.Rasterize(canceled, []byte(redSquare), 16)
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseErrorMode(t *testing.T) {
	t.Parallel()

	cases := map[string]oksvg.ErrorMode{
		"strict": oksvg.StrictErrorMode,
		"warn":   oksvg.WarnErrorMode,
		"":       oksvg.WarnErrorMode,
		"ignore": oksvg.IgnoreErrorMode,
	}
	for in, want := range cases {
		got, err := ParseErrorMode(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseErrorMode("loud")
	require.ErrorContains(t, err, "unknown svg error mode")
}
