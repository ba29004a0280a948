package braille

import (
	"fmt"
	"math"
)

// Braille cell geometry in pixels
const (
	CellWidth  = 2
	CellHeight = 4
)

// MinCells is the narrowest output, in cells, regardless of scale
const MinCells = 10

// maxPixels bounds either quantized dimension
const maxPixels = math.MaxInt32

// Dimensions describes the raster sampled for one conversion
type Dimensions struct {
	Cells       int // output width in cells
	PixelWidth  int // always a multiple of CellWidth
	PixelHeight int // always a multiple of CellHeight
}

// Rows returns the number of cell rows the raster encodes to
func (d Dimensions) Rows() int {
	return d.PixelHeight / CellHeight
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d px (%d cells wide)", d.PixelWidth, d.PixelHeight, d.Cells)
}

// Quantize computes the raster size for a source with the given aspect ratio
// (width / height). The cell width is floor(baseWidth * scalePercent / 100),
// never below MinCells; the height is rounded up to whole cell rows.
func Quantize(baseWidth, scalePercent int, aspectRatio float64) (Dimensions, error) {
	if baseWidth <= 0 {
		return Dimensions{}, fmt.Errorf("base width %d must be positive: %w", baseWidth, ErrOutOfRangeParameter)
	}
	if scalePercent <= 0 {
		return Dimensions{}, fmt.Errorf("scale %d%% must be positive: %w", scalePercent, ErrOutOfRangeParameter)
	}
	if math.IsNaN(aspectRatio) || math.IsInf(aspectRatio, 0) || aspectRatio <= 0 {
		return Dimensions{}, fmt.Errorf("aspect ratio %v: %w", aspectRatio, ErrInvalidDimensions)
	}

	cells := math.Max(MinCells, math.Floor(float64(baseWidth)*float64(scalePercent)/100))
	width := cells * CellWidth
	height := math.Ceil(width/aspectRatio/2) * CellHeight

	if width > maxPixels || height > maxPixels {
		return Dimensions{}, fmt.Errorf("quantized raster %.0f x %.0f too large: %w", width, height, ErrInvalidDimensions)
	}
	if height <= 0 {
		return Dimensions{}, fmt.Errorf("quantized raster %.0f x %.0f is empty: %w", width, height, ErrInvalidDimensions)
	}

	return Dimensions{
		Cells:       int(cells),
		PixelWidth:  int(width),
		PixelHeight: int(height),
	}, nil
}
