package carver

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/esimov/carver/utils"
	pigo "github.com/esimov/pigo/core"
)

// FaceProtector detects faces with a pigo cascade classifier so that
// their area can be made expensive for the seam to cross.
type FaceProtector struct {
	detector *pigo.Pigo

	// Angle is the in-plane rotation of the faces to look for (0.0 - 1.0).
	Angle float64
	// MinSize is the smallest face size in pixels.
	MinSize int
	// Quality is the detection score threshold below which faces are ignored.
	Quality float32
}

// NewFaceProtector unpacks the cascade classifier.
func NewFaceProtector(cascade []byte) (fp *FaceProtector, err error) {
	// The tree depth and the tree count sit right after the 8 byte header.
	if len(cascade) < 16 {
		return nil, fmt.Errorf("error unpacking the cascade file: %d bytes is too short", len(cascade))
	}
	// pigo indexes into the packet without bounds checks, a truncated file panics.
	defer func() {
		if r := recover(); r != nil {
			fp, err = nil, fmt.Errorf("error unpacking the cascade file: %v", r)
		}
	}()

	// Unpack the binary file. This will return the number of cascade trees,
	// the tree depth, the threshold and the prediction from tree's leaf nodes.
	detector, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("error unpacking the cascade file: %w", err)
	}
	return &FaceProtector{
		detector: detector,
		MinSize:  100,
		Quality:  5.0,
	}, nil
}

// Detect returns the bounding boxes of the faces found in img,
// relative to the image's top-left corner.
func (fp *FaceProtector) Detect(img image.Image) []image.Rectangle {
	src := imaging.Clone(img)
	dx, dy := src.Bounds().Dx(), src.Bounds().Dy()

	cParams := pigo.CascadeParams{
		MinSize:     fp.MinSize,
		MaxSize:     utils.Max(dx, dy),
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,

		ImageParams: pigo.ImageParams{
			Pixels: pigo.RgbToGrayscale(src),
			Rows:   dy,
			Cols:   dx,
			Dim:    dx,
		},
	}

	// Run the classifier over the obtained leaf nodes and return the detection results.
	// The result contains quadruplets representing the row, column, scale and detection score.
	faces := fp.detector.RunCascade(cParams, fp.Angle)

	// Calculate the intersection over union (IoU) of two clusters.
	faces = fp.detector.ClusterDetections(faces, 0.2)

	rects := make([]image.Rectangle, 0, len(faces))
	for _, face := range faces {
		if face.Q > fp.Quality {
			rects = append(rects, image.Rect(
				face.Col-face.Scale/2,
				face.Row-face.Scale/2,
				face.Col+face.Scale/2,
				face.Row+face.Scale/2,
			))
		}
	}
	return rects
}

// Protect returns a copy of the grid where penalty is added to every cell covered by
// one of the rectangles. Rectangles are clipped to the grid.
func Protect(grid Grid, rects []image.Rectangle, penalty float64) (Grid, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if penalty < 0 || math.IsNaN(penalty) || math.IsInf(penalty, 0) {
		return nil, fmt.Errorf("%w: penalty %v", ErrInvalidCost, penalty)
	}
	h, w := grid.Dims()
	bounds := image.Rect(0, 0, w, h)

	dst := grid.Clone()
	for _, r := range rects {
		r = r.Intersect(bounds)
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				dst[y][x] += penalty
			}
		}
	}
	return dst, nil
}
