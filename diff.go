package carver

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// SquaredDiff builds a cost grid from two overlapping image strips of the same size.
// Every cell holds the squared difference of the two pixels summed over the R, G and B channels,
// so a seam through the grid follows the path where both strips look most alike.
func SquaredDiff(a, b image.Image) (Grid, error) {
	if a.Bounds().Dx() != b.Bounds().Dx() || a.Bounds().Dy() != b.Bounds().Dy() {
		return nil, fmt.Errorf("%w: %v vs %v", ErrSizeMismatch, a.Bounds().Size(), b.Bounds().Size())
	}
	src, ref := imaging.Clone(a), imaging.Clone(b)
	dx, dy := src.Bounds().Dx(), src.Bounds().Dy()
	if dx == 0 || dy == 0 {
		return nil, ErrEmptyGrid
	}

	grid := make(Grid, dy)
	for y := 0; y < dy; y++ {
		grid[y] = make([]float64, dx)
		for x := 0; x < dx; x++ {
			i := src.PixOffset(x, y)
			dr := float64(src.Pix[i+0]) - float64(ref.Pix[i+0])
			dg := float64(src.Pix[i+1]) - float64(ref.Pix[i+1])
			db := float64(src.Pix[i+2]) - float64(ref.Pix[i+2])

			grid[y][x] = dr*dr + dg*dg + db*db
		}
	}
	return grid, nil
}
