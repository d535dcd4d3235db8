package carver

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
)

// DecodeImage decodes an image and converts it to *image.NRGBA with min-point at (0, 0).
// The EXIF orientation tag of JPEG files is applied.
func DecodeImage(r io.Reader) (*image.NRGBA, error) {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("could not decode the image: %w", err)
	}
	return imaging.Clone(src), nil
}

// EncodeImage encodes the image into w using the format matching the file extension.
// An empty extension defaults to JPEG.
func EncodeImage(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case "", ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	case ".png":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// DrawSeam returns a copy of img with the seam pixels painted with col.
// Seam rows or columns falling outside of the image are skipped.
func DrawSeam(img image.Image, s Seam, col color.Color) *image.NRGBA {
	dst := imaging.Clone(img)
	bounds := dst.Bounds()
	for _, pt := range s.Points() {
		if pt.In(bounds) {
			dst.Set(pt.X, pt.Y, col)
		}
	}
	return dst
}
