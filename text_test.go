package braille

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFontRasterizerCanvas(t *testing.T) {
	r, err := NewFontRasterizer()
	require.NoError(t, err)
	assert.Equal(t, DefaultFontSize, r.Size())

	w, h, err := r.Measure([]string{"Hi"})
	require.NoError(t, err)
	assert.Positive(t, w)
	assert.Equal(t, 29, h) // ceil(24 * 1 * 1.2)

	img, err := r.RasterizeText([]string{"Hi"})
	require.NoError(t, err)
	assert.Equal(t, w, img.Bounds().Dx())
	assert.Equal(t, h, img.Bounds().Dy())

	// background is white, glyphs are dark
	grid := Luminance(img)
	assert.Equal(t, uint8(255), grid.At(0, 0))
	lo, _ := grid.MinMax()
	assert.Less(t, lo, uint8(64))
}

func TestFontRasterizerMultipleLines(t *testing.T) {
	r, err := NewFontRasterizer()
	require.NoError(t, err)

	one, err := r.RasterizeText([]string{"wide line here"})
	require.NoError(t, err)
	two, err := r.RasterizeText([]string{"wide line here", "x"})
	require.NoError(t, err)

	assert.Equal(t, one.Bounds().Dx(), two.Bounds().Dx(), "width follows the longest line")
	assert.Equal(t, 58, two.Bounds().Dy())

	// the second line has ink only near the left edge
	grid := Luminance(two)
	for y := 30; y < grid.Height; y++ {
		for x := grid.Width / 2; x < grid.Width; x++ {
			require.Equal(t, uint8(255), grid.At(x, y), "unexpected ink at (%d,%d)", x, y)
		}
	}
}

func TestFontRasterizerEmpty(t *testing.T) {
	r, err := NewFontRasterizer()
	require.NoError(t, err)

	_, err = r.RasterizeText([]string{""})
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = r.RasterizeText(nil)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestFontRasterizerNormalizesInput(t *testing.T) {
	r, err := NewFontRasterizer()
	require.NoError(t, err)

	composed, err := r.RasterizeText([]string{"\u00e9"})
	require.NoError(t, err)
	decomposed, err := r.RasterizeText([]string{"e\u0301"})
	require.NoError(t, err)

	assert.Equal(t, Luminance(composed).Pix, Luminance(decomposed).Pix)
}

func TestNewFontRasterizerFromTTF(t *testing.T) {
	_, err := NewFontRasterizerFromTTF([]byte("not a font"), 12)
	assert.Error(t, err)
}

func TestFontRasterizerConcurrentUse(t *testing.T) {
	r, err := NewFontRasterizer()
	require.NoError(t, err)

	want, err := r.RasterizeText([]string{"abc"})
	require.NoError(t, err)
	wantPix := Luminance(want).Pix

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			img, err := r.RasterizeText([]string{"abc"})
			if assert.NoError(t, err) {
				assert.Equal(t, wantPix, Luminance(img).Pix)
			}
		}()
	}
	wg.Wait()
}

func TestSplitText(t *testing.T) {
	assert.Equal(t, []string{""}, SplitText(""))
	assert.Equal(t, []string{"a", "b"}, SplitText("a\nb"))
	assert.Equal(t, []string{"a", "b", ""}, SplitText("a\r\nb\r\n"))
}
