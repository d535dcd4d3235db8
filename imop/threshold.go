package imop

import (
	"image"

	"github.com/disintegration/imaging"
)

// Threshold converts the image to black and white using a global threshold.
// Pixels whose luminance is at most t become black, every other pixel becomes white.
func Threshold(src image.Image, t uint8) *image.Gray {
	gray := imaging.Grayscale(src)
	dx, dy := gray.Bounds().Dx(), gray.Bounds().Dy()
	dst := image.NewGray(image.Rect(0, 0, dx, dy))

	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			// imaging.Grayscale stores the luminance in all three color channels.
			if gray.Pix[gray.PixOffset(x, y)] > t {
				dst.Pix[dst.PixOffset(x, y)] = 0xff
			}
		}
	}
	return dst
}
