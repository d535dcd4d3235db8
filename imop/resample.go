package imop

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Downscale shrinks the image by the linear factor n, averaging every n×n block of pixels.
// Rows and columns which do not fill a whole block are cropped first.
func Downscale(src image.Image, n int) (*image.NRGBA, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadFactor, n)
	}
	img := imaging.Clone(src)
	dx, dy := img.Bounds().Dx()/n, img.Bounds().Dy()/n
	if dx == 0 || dy == 0 {
		return nil, fmt.Errorf("%w: %v with factor %d", ErrTooSmall, img.Bounds().Size(), n)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, dx, dy))
	area := float64(n * n)

	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			var sum [4]float64
			for by := y * n; by < y*n+n; by++ {
				for bx := x * n; bx < x*n+n; bx++ {
					i := img.PixOffset(bx, by)
					for c := 0; c < 4; c++ {
						sum[c] += float64(img.Pix[i+c])
					}
				}
			}
			i := dst.PixOffset(x, y)
			for c := 0; c < 4; c++ {
				dst.Pix[i+c] = Adapt(sum[c] / area)
			}
		}
	}
	return dst, nil
}

// UpscaleBy2 doubles the image size in both directions.
// Every source pixel is kept at the top-left of its 2×2 block, the other three
// pixels are the means with the right, bottom and bottom-right neighbours.
// The last row and column are replicated so edge pixels have neighbours.
func UpscaleBy2(src image.Image) *image.NRGBA {
	img := imaging.Clone(src)
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, dx*2, dy*2))

	// at returns the source pixel offset with coordinates clamped to the image.
	at := func(x, y int) int {
		if x >= dx {
			x = dx - 1
		}
		if y >= dy {
			y = dy - 1
		}
		return img.PixOffset(x, y)
	}
	mean := func(a, b int) [4]uint8 {
		var px [4]uint8
		for c := 0; c < 4; c++ {
			px[c] = Adapt((float64(img.Pix[a+c]) + float64(img.Pix[b+c])) / 2)
		}
		return px
	}
	put := func(x, y int, px [4]uint8) {
		i := dst.PixOffset(x, y)
		copy(dst.Pix[i:i+4], px[:])
	}

	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			p := at(x, y)
			put(2*x, 2*y, mean(p, p))
			put(2*x+1, 2*y, mean(p, at(x+1, y)))
			put(2*x, 2*y+1, mean(p, at(x, y+1)))
			put(2*x+1, 2*y+1, mean(p, at(x+1, y+1)))
		}
	}
	return dst
}
