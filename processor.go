package carver

import (
	"errors"
	"image"

	"github.com/esimov/carver/utils"
)

// defaultSeamColor is used for the debug overlay when no seam color is set.
const defaultSeamColor = "#ff0000"

// Processor options
//
// The face protector is built from Cascade on first use, so later changes to Cascade
// are ignored; use a new Processor for another classifier. The Carver is reused between
// calls, which makes a Processor not safe for concurrent use. Give every goroutine its own.
type Processor struct {
	SeamColor   string
	Cascade     []byte
	FaceAngle   float64
	FacePenalty float64
	FaceDetect  bool
	Debug       bool

	carver    *Carver
	protector *FaceProtector
}

// Result holds the outcome of a seam computation.
type Result struct {
	Seam Seam
	Cost float64
	// Faces holds the protected face regions, if face detection was enabled.
	Faces []image.Rectangle
	// Overlay is the source image with the seam drawn over it. Only set in debug mode.
	Overlay *image.NRGBA
}

// Process computes the seam along which the two overlapping strips src and ref
// differ the least. When face detection is enabled the faces found in src are
// penalized so the seam avoids them.
func (p *Processor) Process(src, ref image.Image) (*Result, error) {
	grid, err := SquaredDiff(src, ref)
	if err != nil {
		return nil, err
	}

	var faces []image.Rectangle
	if p.FaceDetect {
		if p.protector == nil {
			if len(p.Cascade) == 0 {
				return nil, errors.New("please provide a face classifier when face detection is enabled")
			}
			if p.protector, err = NewFaceProtector(p.Cascade); err != nil {
				return nil, err
			}
		}
		p.protector.Angle = p.FaceAngle

		faces = p.protector.Detect(src)
		if grid, err = Protect(grid, faces, p.FacePenalty); err != nil {
			return nil, err
		}
	}

	res, err := p.ProcessGrid(grid)
	if err != nil {
		return nil, err
	}
	res.Faces = faces

	if p.Debug {
		seamColor := p.SeamColor
		if seamColor == "" {
			seamColor = defaultSeamColor
		}
		res.Overlay = DrawSeam(src, res.Seam, utils.HexToRGBA(seamColor))
	}
	return res, nil
}

// ProcessGrid computes the seam of an already built cost grid.
// The Processor keeps its Carver around so the cumulative table is reused between calls.
func (p *Processor) ProcessGrid(grid Grid) (*Result, error) {
	if p.carver == nil {
		h, w := grid.Dims()
		p.carver = NewCarver(w, h)
	}
	seam, err := p.carver.ComputeSeam(grid)
	if err != nil {
		return nil, err
	}
	cost, err := seam.Cost(grid)
	if err != nil {
		return nil, err
	}
	return &Result{Seam: seam, Cost: cost}, nil
}
