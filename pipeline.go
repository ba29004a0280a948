package braille

import (
	"fmt"
	"image"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/apex/log"
)

// Document is the result of a conversion
type Document struct {
	// Text holds braille cells (U+2800-U+28FF) and '\n' separators only
	Text string
	// Length is the number of codepoints in Text, newlines included
	Length int
	// Lines is the number of lines in Text
	Lines int
	// Dimensions is the raster the document was sampled from
	Dimensions Dimensions
}

func (d Document) String() string {
	return d.Text
}

// Empty reports whether every line was filtered out
func (d Document) Empty() bool {
	return d.Text == ""
}

func newDocument(text string, dims Dimensions) Document {
	doc := Document{
		Text:       text,
		Length:     utf8.RuneCountInString(text),
		Dimensions: dims,
	}
	if text != "" {
		doc.Lines = len(SplitLines(text))
	}
	return doc
}

// Source is something that can be turned into a raster for conversion.
// Use FromImage or FromText to create one.
type Source interface {
	raster(c *Converter) (image.Image, error)
	describe() string
}

type imageSource struct {
	img image.Image
}

// FromImage wraps a decoded image. The image is never modified.
func FromImage(img image.Image) Source {
	return &imageSource{img: img}
}

func (s *imageSource) raster(*Converter) (image.Image, error) {
	if s.img == nil {
		return nil, fmt.Errorf("image cannot be nil: %w", ErrInvalidDimensions)
	}
	return s.img, nil
}

func (s *imageSource) describe() string {
	return "image"
}

type textSource struct {
	lines []string
}

// FromText wraps text to be rendered and then converted, one output line per
// '\n'-separated input line.
func FromText(text string) Source {
	return &textSource{lines: SplitText(text)}
}

// FromLines is FromText with the lines already split
func FromLines(lines []string) Source {
	cp := make([]string, len(lines))
	copy(cp, lines)
	return &textSource{lines: cp}
}

func (s *textSource) raster(c *Converter) (image.Image, error) {
	r, err := c.rasterizer()
	if err != nil {
		return nil, err
	}
	img, err := r.RasterizeText(s.lines)
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize text: %w", err)
	}
	return img, nil
}

func (s *textSource) describe() string {
	return "text"
}

// Converter runs the conversion pipeline. The zero value is ready to use with
// defaults; its fields are collaborators and are only read during Convert, so
// one Converter may serve concurrent conversions.
type Converter struct {
	// BaseWidth is the output width in cells at 100% scale. 0 means DefaultBaseWidth.
	BaseWidth int
	// Resizer resamples the source raster. nil means Bilinear.
	Resizer Resizer
	// Rasterizer renders text sources. nil means the Go Regular font rasterizer.
	Rasterizer TextRasterizer
	// Workers > 1 spreads cell encoding over that many goroutines
	Workers int
}

var (
	defaultRasterizerOnce sync.Once
	defaultRasterizer     TextRasterizer
	defaultRasterizerErr  error
)

func (c *Converter) rasterizer() (TextRasterizer, error) {
	if c.Rasterizer != nil {
		return c.Rasterizer, nil
	}
	defaultRasterizerOnce.Do(func() {
		defaultRasterizer, defaultRasterizerErr = NewFontRasterizer()
	})
	return defaultRasterizer, defaultRasterizerErr
}

func (c *Converter) baseWidth() int {
	if c.BaseWidth == 0 {
		return DefaultBaseWidth
	}
	return c.BaseWidth
}

func (c *Converter) resizer() Resizer {
	if c.Resizer == nil {
		return Bilinear
	}
	return c.Resizer
}

// Convert validates p, rasterizes src, quantizes and resamples it, then
// extracts luminance, normalizes contrast, encodes cells and optimizes the
// result. Errors leave no partial output.
func (c *Converter) Convert(src Source, p Params) (Document, error) {
	if err := p.Validate(); err != nil {
		return Document{}, err
	}
	if src == nil {
		return Document{}, fmt.Errorf("source cannot be nil: %w", ErrInvalidDimensions)
	}

	start := time.Now()

	img, err := src.raster(c)
	if err != nil {
		return Document{}, err
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return Document{}, fmt.Errorf("%s raster is %dx%d: %w", src.describe(), bounds.Dx(), bounds.Dy(), ErrInvalidDimensions)
	}

	dims, err := Quantize(c.baseWidth(), p.ScalePercent, float64(bounds.Dx())/float64(bounds.Dy()))
	if err != nil {
		return Document{}, err
	}

	resized := c.resizer().Resize(img, dims.PixelWidth, dims.PixelHeight)

	grid := Luminance(resized)
	stretched := grid.normalize()

	var lines []Line
	if c.Workers > 1 {
		lines = ParallelEncode(grid, uint8(p.Threshold), p.Invert, c.Workers)
	} else {
		lines = Encode(grid, uint8(p.Threshold), p.Invert)
	}

	doc := newDocument(Optimize(lines), dims)

	Logger().WithFields(log.Fields{
		"source":    src.describe(),
		"src_size":  fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy()),
		"raster":    dims.String(),
		"params":    p.String(),
		"stretched": stretched,
		"raw_lines": len(lines),
		"lines":     doc.Lines,
		"length":    doc.Length,
		"duration":  time.Since(start),
	}).Debug("converted")

	return doc, nil
}

// ConvertGrid runs only the encode and optimize stages over an already
// normalized grid. The grid dimensions are used as-is.
func ConvertGrid(grid *LuminanceGrid, p Params) (Document, error) {
	if err := p.Validate(); err != nil {
		return Document{}, err
	}
	if grid == nil || grid.Width <= 0 || grid.Height <= 0 {
		return Document{}, fmt.Errorf("empty grid: %w", ErrInvalidDimensions)
	}
	lines := Encode(grid, uint8(p.Threshold), p.Invert)
	dims := Dimensions{
		Cells:       (grid.Width + CellWidth - 1) / CellWidth,
		PixelWidth:  grid.Width,
		PixelHeight: grid.Height,
	}
	return newDocument(Optimize(lines), dims), nil
}

// DefaultConverter is used by the package-level helpers
var DefaultConverter = &Converter{}

// Convert runs src through DefaultConverter
func Convert(src Source, p Params) (Document, error) {
	return DefaultConverter.Convert(src, p)
}
