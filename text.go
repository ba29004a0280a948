package braille

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

// Text layout constants
const (
	DefaultFontSize = 24.0
	LineSpacing     = 1.2 // line pitch as a multiple of the font size
)

// TextRasterizer renders lines of text into a raster, one source line per
// output line.
type TextRasterizer interface {
	RasterizeText(lines []string) (image.Image, error)
}

// FontRasterizer draws black, left-aligned text on a white canvas sized to
// the measured text: ceil(longest advance) wide and
// ceil(size * lines * LineSpacing) tall. The baseline of line i sits at
// (i+1) * size * LineSpacing.
type FontRasterizer struct {
	font *opentype.Font
	size float64

	// font.Face is not safe for concurrent use
	mu   sync.Mutex
	face font.Face
}

var defaultFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// NewFontRasterizer returns a rasterizer using the Go Regular font at
// DefaultFontSize.
func NewFontRasterizer() (*FontRasterizer, error) {
	f, err := defaultFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse default font: %w", err)
	}
	return &FontRasterizer{font: f, size: DefaultFontSize}, nil
}

// NewFontRasterizerFromTTF parses an OpenType/TrueType font and renders with
// it at size pixels per em. size <= 0 uses DefaultFontSize.
func NewFontRasterizerFromTTF(data []byte, size float64) (*FontRasterizer, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	if size <= 0 {
		size = DefaultFontSize
	}
	return &FontRasterizer{font: f, size: size}, nil
}

// Size returns the font size in pixels
func (r *FontRasterizer) Size() float64 {
	return r.size
}

// getFace lazily creates the face. Caller holds r.mu.
func (r *FontRasterizer) getFace() (font.Face, error) {
	if r.face != nil {
		return r.face, nil
	}
	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    r.size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	r.face = face
	return face, nil
}

// Measure returns the canvas size RasterizeText would allocate for lines
func (r *FontRasterizer) Measure(lines []string) (width, height int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	face, err := r.getFace()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create font face: %w", err)
	}
	return r.measure(face, lines), int(math.Ceil(r.size * float64(len(lines)) * LineSpacing)), nil
}

func (r *FontRasterizer) measure(face font.Face, lines []string) int {
	var longest fixed.Int26_6
	for _, line := range lines {
		longest = max(longest, font.MeasureString(face, line))
	}
	return longest.Ceil()
}

// RasterizeText implements TextRasterizer. Input is NFC-normalized first so
// combining sequences draw as single glyphs.
func (r *FontRasterizer) RasterizeText(lines []string) (image.Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	face, err := r.getFace()
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}

	normalized := make([]string, len(lines))
	for i, line := range lines {
		normalized[i] = norm.NFC.String(line)
	}

	width := r.measure(face, normalized)
	height := int(math.Ceil(r.size * float64(len(normalized)) * LineSpacing))
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("text measures %dx%d: %w", width, height, ErrInvalidDimensions)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.Black,
		Face: face,
	}
	pitch := r.size * LineSpacing
	for i, line := range normalized {
		d.Dot = fixed.Point26_6{X: 0, Y: fixed.Int26_6(float64(i+1) * pitch * 64)}
		d.DrawString(line)
	}

	return canvas, nil
}

// SplitText splits text into lines on '\n', dropping '\r' from CRLF input
func SplitText(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
