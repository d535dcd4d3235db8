package imop

import (
	"fmt"
	"image"
)

// AdaptUnit converts an H×W×C array of floats in the [0, 1] range into an opaque 8-bit image.
// Only the first three channels are kept, any alpha channel is discarded.
func AdaptUnit(pix [][][]float64) (*image.NRGBA, error) {
	h := len(pix)
	if h == 0 || len(pix[0]) == 0 {
		return nil, ErrBadShape
	}
	w := len(pix[0])

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y, row := range pix {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d pixels, expected %d", ErrBadShape, y, len(row), w)
		}
		for x, px := range row {
			if len(px) < 3 {
				return nil, fmt.Errorf("%w: pixel (%d, %d) has %d channels", ErrBadShape, x, y, len(px))
			}
			i := dst.PixOffset(x, y)
			dst.Pix[i+0] = Adapt(px[0] * 255)
			dst.Pix[i+1] = Adapt(px[1] * 255)
			dst.Pix[i+2] = Adapt(px[2] * 255)
			dst.Pix[i+3] = 0xff
		}
	}
	return dst, nil
}
