package carver

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Grid is a cost map of H rows by W columns. Row 0 is the top of the image.
type Grid [][]float64

// Dims returns the number of rows and the number of columns of the first row.
func (g Grid) Dims() (h, w int) {
	if len(g) == 0 {
		return 0, 0
	}
	return len(g), len(g[0])
}

// Validate checks that the grid is non-empty, rectangular and holds only
// finite, non-negative costs. Shape problems are reported before value problems.
func (g Grid) Validate() error {
	h, w := g.Dims()
	if h == 0 || w == 0 {
		return ErrEmptyGrid
	}
	for y := 1; y < h; y++ {
		if len(g[y]) != w {
			return fmt.Errorf("%w: row %d has %d columns, expected %d", ErrStructural, y, len(g[y]), w)
		}
	}
	for y, row := range g {
		for x, v := range row {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: cell (%d, %d) = %v", ErrInvalidCost, x, y, v)
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	dst := make(Grid, len(g))
	for y, row := range g {
		dst[y] = append([]float64(nil), row...)
	}
	return dst
}

// ParseGrid reads a text cost grid: one row per line, values separated by
// whitespace or commas. Blank lines and lines starting with '#' are skipped.
// The result is validated before being returned.
func ParseGrid(r io.Reader) (Grid, error) {
	var grid Grid

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		row := make([]float64, 0, len(fields))
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: cannot parse %q: %w", line, f, err)
			}
			row = append(row, v)
		}
		grid = append(grid, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("could not read the cost grid: %w", err)
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	return grid, nil
}
