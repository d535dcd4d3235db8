package imop

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapt(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{0, 0},
		{-12.3, 0},
		{127.4, 127},
		{127.5, 128},
		{254.6, 255},
		{300, 255},
		{math.Inf(1), 255},
		{math.Inf(-1), 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Adapt(tt.in), "Adapt(%v)", tt.in)
	}
}

func TestAdaptUnit(t *testing.T) {
	assert := assert.New(t)

	pix := [][][]float64{
		{{1, 0, 0, 0.2}, {0, 1, 0, 1}},
		{{0, 0, 1, 0}, {0.5, 1.2, -0.1, 0.5}},
	}
	img, err := AdaptUnit(pix)
	require.NoError(t, err)

	assert.Equal(image.Rect(0, 0, 2, 2), img.Bounds())
	assert.Equal(color.NRGBA{R: 255, A: 255}, img.NRGBAAt(0, 0))
	assert.Equal(color.NRGBA{G: 255, A: 255}, img.NRGBAAt(1, 0))
	assert.Equal(color.NRGBA{B: 255, A: 255}, img.NRGBAAt(0, 1))
	assert.Equal(color.NRGBA{R: 128, G: 255, B: 0, A: 255}, img.NRGBAAt(1, 1))
}

func TestAdaptUnit_BadShape(t *testing.T) {
	_, err := AdaptUnit(nil)
	assert.ErrorIs(t, err, ErrBadShape)

	_, err = AdaptUnit([][][]float64{{{1, 1, 1}}, {{1, 1, 1}, {0, 0, 0}}})
	assert.ErrorIs(t, err, ErrBadShape)

	_, err = AdaptUnit([][][]float64{{{1, 1}}})
	assert.ErrorIs(t, err, ErrBadShape)
}

func TestThreshold(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 101, G: 101, B: 101, A: 255})
	src.SetNRGBA(2, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	bw := Threshold(src, 100)
	assert.Equal(t, []uint8{0, 255, 255}, bw.Pix)

	bw = Threshold(src, 255)
	assert.Equal(t, []uint8{0, 0, 0}, bw.Pix)
}

func TestDownscale(t *testing.T) {
	assert := assert.New(t)

	// 5x4 image with a cropped last column: only the first 4x4 pixels are used.
	src := image.NewNRGBA(image.Rect(0, 0, 5, 4))
	draw.Draw(src, src.Bounds(), &image.Uniform{color.NRGBA{A: 255}}, image.Point{}, draw.Src)
	src.SetNRGBA(0, 0, color.NRGBA{R: 200, A: 255})
	src.SetNRGBA(1, 1, color.NRGBA{R: 100, A: 255})
	src.SetNRGBA(4, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	dst, err := Downscale(src, 2)
	require.NoError(t, err)
	assert.Equal(image.Rect(0, 0, 2, 2), dst.Bounds())
	assert.Equal(color.NRGBA{R: 75, A: 255}, dst.NRGBAAt(0, 0))
	assert.Equal(color.NRGBA{A: 255}, dst.NRGBAAt(1, 0))

	same, err := Downscale(src, 1)
	require.NoError(t, err)
	assert.Equal(src.Pix, same.Pix)
}

func TestDownscale_Errors(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 3))

	_, err := Downscale(src, 0)
	assert.ErrorIs(t, err, ErrBadFactor)

	_, err = Downscale(src, 4)
	assert.ErrorIs(t, err, ErrTooSmall)
}

func TestUpscaleBy2(t *testing.T) {
	assert := assert.New(t)

	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 0, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 100, A: 255})
	src.SetNRGBA(0, 1, color.NRGBA{R: 200, A: 255})
	src.SetNRGBA(1, 1, color.NRGBA{R: 50, A: 255})

	dst := UpscaleBy2(src)
	assert.Equal(image.Rect(0, 0, 4, 4), dst.Bounds())

	red := func(x, y int) uint8 { return dst.NRGBAAt(x, y).R }

	// Top-left block of pixel (0, 0).
	assert.Equal(uint8(0), red(0, 0))
	assert.Equal(uint8(50), red(1, 0))
	assert.Equal(uint8(100), red(0, 1))
	assert.Equal(uint8(25), red(1, 1))

	// Pixel (1, 1) has only replicated neighbours, so its block is uniform.
	assert.Equal(uint8(50), red(2, 2))
	assert.Equal(uint8(50), red(3, 2))
	assert.Equal(uint8(50), red(2, 3))
	assert.Equal(uint8(50), red(3, 3))

	// Pixel (1, 0): right neighbour is replicated, bottom neighbour is (1, 1).
	assert.Equal(uint8(100), red(3, 0))
	assert.Equal(uint8(75), red(2, 1))
	assert.Equal(uint8(255), dst.NRGBAAt(3, 3).A)
}
