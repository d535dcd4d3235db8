package carver

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtect(t *testing.T) {
	grid := Grid{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	rects := []image.Rectangle{
		image.Rect(0, 0, 2, 2),
		image.Rect(3, 2, 10, 10), // partially outside the grid
	}
	protected, err := Protect(grid, rects, 50)
	require.NoError(t, err)

	assert.Equal(t, Grid{
		{50, 50, 0, 0},
		{50, 50, 0, 0},
		{0, 0, 0, 50},
	}, protected)
	assert.Equal(t, 0.0, grid[0][0], "the source grid should not be modified")
}

func TestProtect_SeamAvoidsFace(t *testing.T) {
	grid := make(Grid, imgHeight)
	for y := range grid {
		grid[y] = make([]float64, imgWidth)
	}
	face := image.Rect(0, 0, 6, imgHeight)

	protected, err := Protect(grid, []image.Rectangle{face}, 1000)
	require.NoError(t, err)

	seam, err := ComputeSeam(protected)
	require.NoError(t, err)
	for _, pt := range seam.Points() {
		assert.False(t, pt.In(face), "seam shouldn't cross the protected zone at %v", pt)
	}
}

func TestProtect_Errors(t *testing.T) {
	_, err := Protect(Grid{{1}}, nil, -1)
	assert.ErrorIs(t, err, ErrInvalidCost)

	_, err = Protect(Grid{{1}}, nil, math.Inf(1))
	assert.ErrorIs(t, err, ErrInvalidCost)

	_, err = Protect(nil, nil, 1)
	assert.ErrorIs(t, err, ErrEmptyGrid)
}

func TestNewFaceProtector_InvalidCascade(t *testing.T) {
	for _, cascade := range [][]byte{
		nil,
		[]byte("garbage"),
		[]byte("garbage garbage garbage"),
	} {
		fp, err := NewFaceProtector(cascade)
		assert.Error(t, err, "cascade %q", cascade)
		assert.Nil(t, fp)
	}
}
