package braille

import (
	"fmt"
	"image"
	"image/color"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResizers(t *testing.T) {
	tests := []struct {
		name         string
		sourceWidth  int
		sourceHeight int
		targetWidth  int
		targetHeight int
	}{
		{name: "Downscale square image", sourceWidth: 100, sourceHeight: 100, targetWidth: 50, targetHeight: 52},
		{name: "Upscale small image", sourceWidth: 10, sourceHeight: 10, targetWidth: 20, targetHeight: 40},
		{name: "Rectangular to cell grid", sourceWidth: 100, sourceHeight: 50, targetWidth: 100, targetHeight: 100},
		{name: "Same size", sourceWidth: 50, sourceHeight: 50, targetWidth: 50, targetHeight: 50},
	}

	for _, name := range ResizerNames() {
		r, err := ResizerByName(name)
		require.NoError(t, err)

		for _, tt := range tests {
			t.Run(fmt.Sprintf("%s/%s", name, tt.name), func(t *testing.T) {
				img := createTestImage(tt.sourceWidth, tt.sourceHeight)

				result := r.Resize(img, tt.targetWidth, tt.targetHeight)
				require.NotNil(t, result)

				bounds := result.Bounds()
				assert.Equal(t, tt.targetWidth, bounds.Dx(), "Width mismatch")
				assert.Equal(t, tt.targetHeight, bounds.Dy(), "Height mismatch")
			})
		}
	}
}

func TestResizersKeepSolidColor(t *testing.T) {
	src := createSolidImage(37, 23, color.Black)

	for _, name := range ResizerNames() {
		r, _ := ResizerByName(name)
		grid := Luminance(r.Resize(src, 20, 40))
		lo, hi := grid.MinMax()
		assert.Equal(t, uint8(0), lo, name)
		assert.Equal(t, uint8(0), hi, name)
	}
}

func TestResizerByName(t *testing.T) {
	assert.Equal(t, []string{"bilinear", "catmullrom", "lanczos", "nearest"}, ResizerNames())

	r, err := ResizerByName("  Lanczos ")
	require.NoError(t, err)
	assert.Equal(t, Lanczos, r)

	r, err = ResizerByName("NEAREST")
	require.NoError(t, err)
	assert.Equal(t, Nearest, r)

	_, err = ResizerByName("bicubic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bilinear, catmullrom, lanczos, nearest")
}

// countingResizer records how often the wrapped resizer actually runs
type countingResizer struct {
	calls atomic.Int32
}

func (c *countingResizer) Resize(src image.Image, width, height int) image.Image {
	c.calls.Add(1)
	return Nearest.Resize(src, width, height)
}

func TestResizeCacheHits(t *testing.T) {
	next := &countingResizer{}
	cache := NewResizeCache(next, 4)
	img := createTestImage(100, 100)

	first := cache.Resize(img, 50, 100)
	second := cache.Resize(img, 50, 100)

	assert.Same(t, first.(*image.RGBA), second.(*image.RGBA), "second call should be served from cache")
	assert.Equal(t, int32(1), next.calls.Load())

	hits, misses := cache.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)

	// a different target size is a different entry
	third := cache.Resize(img, 20, 40)
	assert.Equal(t, 20, third.Bounds().Dx())
	assert.Equal(t, int32(2), next.calls.Load())
	assert.Equal(t, 2, cache.Len())
}

func TestResizeCacheDistinguishesSources(t *testing.T) {
	next := &countingResizer{}
	cache := NewResizeCache(next, 4)

	a := createSolidImage(10, 10, color.Black)
	b := createSolidImage(10, 10, color.White)

	ra := cache.Resize(a, 4, 4)
	rb := cache.Resize(b, 4, 4)

	assert.Equal(t, int32(2), next.calls.Load())
	assert.NotEqual(t, Luminance(ra).Pix, Luminance(rb).Pix)
}

func TestResizeCacheEviction(t *testing.T) {
	next := &countingResizer{}
	cache := NewResizeCache(next, 2)

	img := createTestImage(40, 40)
	cache.Resize(img, 10, 10)
	cache.Resize(img, 20, 20)
	cache.Resize(img, 10, 10) // 10x10 is now most recently used
	cache.Resize(img, 30, 30) // evicts 20x20

	assert.Equal(t, 2, cache.Len())
	assert.Equal(t, int32(3), next.calls.Load())

	cache.Resize(img, 10, 10)
	assert.Equal(t, int32(3), next.calls.Load(), "10x10 should have survived eviction")

	cache.Resize(img, 20, 20)
	assert.Equal(t, int32(4), next.calls.Load(), "20x20 should have been evicted")
}

func TestResizeCacheClear(t *testing.T) {
	cache := NewResizeCache(nil, 0)
	img := createTestImage(20, 20)

	cache.Resize(img, 10, 10)
	cache.Resize(img, 10, 10)
	require.Equal(t, 1, cache.Len())

	cache.Clear()

	assert.Zero(t, cache.Len())
	hits, misses := cache.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
}

func TestResizeCacheBypassesValueImages(t *testing.T) {
	next := &countingResizer{}
	cache := NewResizeCache(next, 4)

	// value types have no identity to key on
	src := valueImage{w: 8, h: 8}
	cache.Resize(src, 4, 4)
	cache.Resize(src, 4, 4)

	assert.Equal(t, int32(2), next.calls.Load())
	assert.Zero(t, cache.Len())
}

func TestResizeCacheConcurrentAccess(t *testing.T) {
	cache := NewResizeCache(Bilinear, 8)
	img := createTestImage(100, 100)

	numGoroutines := runtime.NumCPU() * 2
	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			size := 10 + 2*(id%4)
			result := cache.Resize(img, size, size*2)
			assert.Equal(t, size, result.Bounds().Dx())
			assert.Equal(t, size*2, result.Bounds().Dy())
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, cache.Len(), 4)
}

// valueImage is a non-pointer image.Image
type valueImage struct {
	w, h int
}

func (v valueImage) ColorModel() color.Model { return color.GrayModel }
func (v valueImage) Bounds() image.Rectangle { return image.Rect(0, 0, v.w, v.h) }
func (v valueImage) At(x, y int) color.Color { return color.Gray{Y: uint8(x * 16)} }
