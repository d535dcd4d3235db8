package carver

import (
	"fmt"
	"image"

	"github.com/esimov/carver/utils"
)

// Carver holds the cumulative cost table used to find the lowest cost vertical seam.
// The table is stored row-major and is reused between calls when large enough.
// A Carver is not safe for concurrent use.
type Carver struct {
	Width  int
	Height int
	points []float64
}

// Seam holds the column index of the seam for every row, from top to bottom.
type Seam []int

// NewCarver returns a Carver with a preallocated table for a grid of the given size.
func NewCarver(width, height int) *Carver {
	c := &Carver{}
	if width > 0 && height > 0 {
		c.points = make([]float64, 0, width*height)
	}
	return c
}

// ComputeSeam returns the lowest cost vertical seam of the grid.
// The grid is left untouched.
func ComputeSeam(grid Grid) (Seam, error) {
	h, w := grid.Dims()
	return NewCarver(w, h).ComputeSeam(grid)
}

// ComputeSeam runs the accumulation and backtrace passes on the grid,
// reusing the Carver's table.
func (c *Carver) ComputeSeam(grid Grid) (Seam, error) {
	if err := c.Accumulate(grid); err != nil {
		return nil, err
	}
	return c.Backtrace()
}

// set stores the cumulative cost at column x of row y.
func (c *Carver) set(x, y int, v float64) {
	c.points[x+y*c.Width] = v
}

// row returns the cumulative costs of row y.
func (c *Carver) row(y int) []float64 {
	return c.points[y*c.Width : (y+1)*c.Width]
}

// Accumulate validates the grid and fills the cumulative cost table:
//   - the first row is copied as is, since it has no predecessor;
//   - every other cell is its own cost plus the smallest cumulative cost
//     among the cells of the previous row it can be reached from.
func (c *Carver) Accumulate(grid Grid) error {
	if err := grid.Validate(); err != nil {
		return err
	}
	c.Height, c.Width = grid.Dims()

	size := c.Width * c.Height
	if cap(c.points) < size {
		c.points = make([]float64, size)
	}
	c.points = c.points[:size]

	copy(c.row(0), grid[0])
	for y := 1; y < c.Height; y++ {
		prev := c.row(y - 1)
		for x := 0; x < c.Width; x++ {
			lo, hi := window(x, c.Width)
			_, min := windowMin(prev, lo, hi)
			c.set(x, y, grid[y][x]+min)
		}
	}
	return nil
}

// Backtrace walks the cumulative table from the bottom row to the top one.
// It starts from the cheapest cell of the last row and on each row above
// picks the cheapest cell adjacent to the one chosen below.
// Ties are always resolved towards the smallest column index.
func (c *Carver) Backtrace() (Seam, error) {
	if c.Width <= 0 || c.Height <= 0 || len(c.points) != c.Width*c.Height {
		return nil, fmt.Errorf("%w: cumulative table holds %d values for a %dx%d grid",
			ErrStructural, len(c.points), c.Width, c.Height)
	}
	seam := make(Seam, c.Height)

	last := c.Height - 1
	seam[last], _ = windowMin(c.row(last), 0, c.Width-1)

	for y := last - 1; y >= 0; y-- {
		lo, hi := window(seam[y+1], c.Width)
		seam[y], _ = windowMin(c.row(y), lo, hi)
	}
	return seam, nil
}

// Cumulative returns a copy of the cumulative cost table as a grid.
func (c *Carver) Cumulative() [][]float64 {
	if len(c.points) != c.Width*c.Height {
		return nil
	}
	out := make([][]float64, c.Height)
	for y := range out {
		out[y] = append([]float64(nil), c.row(y)...)
	}
	return out
}

// window returns the inclusive range of columns adjacent to column x
// on a neighbouring row: x-1, x and x+1, clipped to the grid edges.
// Accumulation uses it to find the predecessors of a cell and
// backtrace to find the cells which could have led to the one below.
func window(x, width int) (lo, hi int) {
	return utils.Clamp(x-1, 0, width-1), utils.Clamp(x+1, 0, width-1)
}

// windowMin returns the index and value of the smallest element of row[lo:hi+1].
// On ties the first (leftmost) index wins.
func windowMin(row []float64, lo, hi int) (int, float64) {
	idx, min := lo, row[lo]
	for x := lo + 1; x <= hi; x++ {
		if row[x] < min {
			idx, min = x, row[x]
		}
	}
	return idx, min
}

// Points returns the pixel coordinates of the seam.
func (s Seam) Points() []image.Point {
	pts := make([]image.Point, len(s))
	for y, x := range s {
		pts[y] = image.Point{X: x, Y: y}
	}
	return pts
}

// Cost sums the grid values along the seam.
func (s Seam) Cost(grid Grid) (float64, error) {
	if len(s) != len(grid) {
		return 0, fmt.Errorf("%w: seam has %d rows, grid has %d", ErrStructural, len(s), len(grid))
	}
	var total float64
	for y, x := range s {
		if x < 0 || x >= len(grid[y]) {
			return 0, fmt.Errorf("%w: seam column %d out of range on row %d", ErrStructural, x, y)
		}
		total += grid[y][x]
	}
	return total, nil
}
