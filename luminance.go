package braille

import (
	"image"
	"image/color"
)

// Luminance weights applied to 8-bit red, green and blue channels
const (
	redWeight   = 0.3
	greenWeight = 0.59
	blueWeight  = 0.11
)

// LuminanceGrid is a width x height grid of gray samples stored row-major.
type LuminanceGrid struct {
	Pix    []uint8
	Width  int
	Height int
}

// NewLuminanceGrid allocates a zeroed (black) grid
func NewLuminanceGrid(width, height int) *LuminanceGrid {
	return &LuminanceGrid{
		Pix:    make([]uint8, width*height),
		Width:  width,
		Height: height,
	}
}

// At returns the sample at (x, y). The caller must stay in bounds.
func (g *LuminanceGrid) At(x, y int) uint8 {
	return g.Pix[y*g.Width+x]
}

// Set writes the sample at (x, y)
func (g *LuminanceGrid) Set(x, y int, v uint8) {
	g.Pix[y*g.Width+x] = v
}

// Fill sets every sample to v
func (g *LuminanceGrid) Fill(v uint8) *LuminanceGrid {
	for i := range g.Pix {
		g.Pix[i] = v
	}
	return g
}

// Clone returns a deep copy of the grid
func (g *LuminanceGrid) Clone() *LuminanceGrid {
	pix := make([]uint8, len(g.Pix))
	copy(pix, g.Pix)
	return &LuminanceGrid{Pix: pix, Width: g.Width, Height: g.Height}
}

// MinMax returns the darkest and brightest samples. An empty grid reports 0, 0.
func (g *LuminanceGrid) MinMax() (lo, hi uint8) {
	if len(g.Pix) == 0 {
		return 0, 0
	}
	lo, hi = 255, 0
	for _, v := range g.Pix {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

// Image returns the grid as an *image.Gray sharing no memory with g
func (g *LuminanceGrid) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		copy(img.Pix[y*img.Stride:], g.Pix[y*g.Width:(y+1)*g.Width])
	}
	return img
}

// Gray reduces one 8-bit color to its weighted luminance
func Gray(r, g, b uint8) uint8 {
	v := redWeight*float64(r) + greenWeight*float64(g) + blueWeight*float64(b)
	return clampByte(v + 0.5)
}

// Luminance extracts a grid from img with the same dimensions. Alpha is
// ignored: colors are read un-premultiplied, so fully transparent pixels
// read as black.
func Luminance(img image.Image) *LuminanceGrid {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	grid := NewLuminanceGrid(w, h)

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < h; y++ {
			off := (bounds.Min.Y+y-src.Rect.Min.Y)*src.Stride + (bounds.Min.X - src.Rect.Min.X)
			copy(grid.Pix[y*w:(y+1)*w], src.Pix[off:off+w])
		}
	case *image.RGBA:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				i := src.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
				p := src.Pix[i : i+4 : i+4]
				r, g, b := unpremultiply(p[0], p[1], p[2], p[3])
				grid.Pix[y*w+x] = Gray(r, g, b)
			}
		}
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				i := src.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
				p := src.Pix[i : i+3 : i+3]
				grid.Pix[y*w+x] = Gray(p[0], p[1], p[2])
			}
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
				grid.Pix[y*w+x] = Gray(c.R, c.G, c.B)
			}
		}
	}

	return grid
}

func unpremultiply(r, g, b, a uint8) (uint8, uint8, uint8) {
	switch a {
	case 0xff:
		return r, g, b
	case 0:
		return 0, 0, 0
	}
	un := func(c uint8) uint8 {
		return uint8(min(uint32(c)*0xff/uint32(a), 0xff))
	}
	return un(r), un(g), un(b)
}

func clampByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
