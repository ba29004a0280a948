package braille

import (
	"image"

	"github.com/charmbracelet/x/mosaic"
)

// Preview renders img as colored unicode halfblocks fitting within width x
// height terminal cells, for showing the source next to its braille output.
// Each cell is one pixel wide and two pixels tall, so the aspect ratio is
// kept by fitting against a 1:2 pixel grid.
func Preview(img image.Image, width, height int) string {
	if img == nil || width <= 0 || height <= 0 {
		return ""
	}

	bounds := img.Bounds()
	srcW, srcH := float64(bounds.Dx()), float64(bounds.Dy())
	if srcW == 0 || srcH == 0 {
		return ""
	}

	ratio := min(float64(width)/srcW, float64(height)*2.0/srcH)
	cols := max(1, int(srcW*ratio))
	rows := max(1, int(srcH*ratio/2.0))

	return mosaic.New().Width(cols).Height(rows).Render(img)
}
