package tui

import (
	"image"

	braille "github.com/blacktop/go-braille"
)

// previewWidget holds the halfblock rendering of the source image and only
// re-renders when its size or image changes.
type previewWidget struct {
	img         image.Image
	width       int
	height      int
	rendered    string
	needsUpdate bool
}

func newPreviewWidget(img image.Image) *previewWidget {
	return &previewWidget{img: img, needsUpdate: true}
}

// SetSize sets the widget dimensions in character cells
func (w *previewWidget) SetSize(width, height int) *previewWidget {
	if w.width != width || w.height != height {
		w.width = width
		w.height = height
		w.needsUpdate = true
	}
	return w
}

// SetImage swaps the previewed image
func (w *previewWidget) SetImage(img image.Image) *previewWidget {
	if w.img != img {
		w.img = img
		w.needsUpdate = true
	}
	return w
}

// GetSize returns the current widget dimensions
func (w *previewWidget) GetSize() (width, height int) {
	return w.width, w.height
}

// Render returns the preview, rendering it again only if something changed
func (w *previewWidget) Render() string {
	if !w.needsUpdate {
		return w.rendered
	}
	w.rendered = braille.Preview(w.img, w.width, w.height)
	w.needsUpdate = false
	return w.rendered
}
