package carver

import "errors"

var (
	// ErrEmptyGrid is returned when the cost grid has no rows or no columns.
	ErrEmptyGrid = errors.New("carver: cost grid must have at least one row and one column")

	// ErrInvalidCost is returned when a cost is negative, NaN or infinite.
	ErrInvalidCost = errors.New("carver: cost values must be finite and non-negative")

	// ErrStructural is returned when the grid rows have different lengths,
	// or when the cumulative table does not match its declared shape.
	ErrStructural = errors.New("carver: malformed grid")

	// ErrSizeMismatch is returned when two images being compared have different bounds.
	ErrSizeMismatch = errors.New("carver: image sizes do not match")

	// ErrUnsupportedFormat is returned by EncodeImage for unknown file extensions.
	ErrUnsupportedFormat = errors.New("carver: unsupported image format")
)
