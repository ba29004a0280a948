package braille

import "errors"

var (
	// ErrInvalidDimensions is returned when a raster has zero width or height,
	// or when the quantized output raster would be empty.
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrOutOfRangeParameter is returned when a parameter is rejected before
	// any processing begins.
	ErrOutOfRangeParameter = errors.New("parameter out of range")
)
