package braille

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultFilename is the suggested name for saved output
const DefaultFilename = "braille-art.txt"

// Image is a conversion job with a fluent API for configuration
type Image struct {
	source Source
	img    image.Image
	reader io.Reader
	path   string

	params    Params
	converter Converter
}

func newImage() *Image {
	return &Image{params: DefaultParams()}
}

// New creates an Image from a decoded image.Image
func New(img image.Image) *Image {
	if img == nil {
		return nil
	}
	i := newImage()
	i.img = img
	i.source = FromImage(img)
	return i
}

// Open creates an Image from a file path. The file is read on first render.
func Open(path string) (*Image, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}
	i := newImage()
	i.path = path
	return i, nil
}

// From creates an Image from an io.Reader. The reader is consumed on first render.
func From(r io.Reader) *Image {
	if r == nil {
		return nil
	}
	i := newImage()
	i.reader = r
	return i
}

// Text creates an Image that renders text, one output line per input line
func Text(text string) *Image {
	i := newImage()
	i.source = FromText(text)
	return i
}

// Scale sets the scale in percent of the base width
func (i *Image) Scale(percent int) *Image {
	i.params.ScalePercent = percent
	return i
}

// Threshold sets the gray cutoff (0-255)
func (i *Image) Threshold(t int) *Image {
	i.params.Threshold = t
	return i
}

// Invert makes bright samples into dots instead of dark ones
func (i *Image) Invert(v bool) *Image {
	i.params.Invert = v
	return i
}

// Params replaces scale, threshold and invert at once
func (i *Image) Params(p Params) *Image {
	i.params = p
	return i
}

// BaseWidth sets the output width in cells at 100% scale
func (i *Image) BaseWidth(cells int) *Image {
	i.converter.BaseWidth = cells
	return i
}

// Resizer sets the resampling filter
func (i *Image) Resizer(r Resizer) *Image {
	i.converter.Resizer = r
	return i
}

// Rasterizer sets the text rasterizer used for Text images
func (i *Image) Rasterizer(r TextRasterizer) *Image {
	i.converter.Rasterizer = r
	return i
}

// Workers sets how many goroutines encode cells
func (i *Image) Workers(n int) *Image {
	i.converter.Workers = n
	return i
}

// Bounds returns the source image bounds, loading it if needed. Text images
// report an empty rectangle.
func (i *Image) Bounds() (image.Rectangle, error) {
	if _, ok := i.source.(*textSource); ok {
		return image.Rectangle{}, nil
	}
	img, err := i.loadImage()
	if err != nil {
		return image.Rectangle{}, err
	}
	return img.Bounds(), nil
}

// Source returns the pipeline source, loading the image if needed
func (i *Image) Source() (Source, error) {
	if i.source != nil {
		return i.source, nil
	}
	if _, err := i.loadImage(); err != nil {
		return nil, err
	}
	return i.source, nil
}

// Document converts the image and returns the full result
func (i *Image) Document() (Document, error) {
	src, err := i.Source()
	if err != nil {
		return Document{}, err
	}
	return i.converter.Convert(src, i.params)
}

// Render converts the image and returns the braille text
func (i *Image) Render() (string, error) {
	doc, err := i.Document()
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}

// Print writes the braille text and a trailing newline to stdout
func (i *Image) Print() error {
	return i.Write(os.Stdout)
}

// Write writes the braille text and a trailing newline to w
func (i *Image) Write(w io.Writer) error {
	out, err := i.Render()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, out+"\n"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// WriteFile saves the braille text as UTF-8 to path
func (i *Image) WriteFile(path string) error {
	out, err := i.Render()
	if err != nil {
		return err
	}
	return SaveDocument(path, out)
}

// SaveDocument writes text to path as UTF-8 with a trailing newline
func SaveDocument(path, text string) error {
	if path == "" {
		path = DefaultFilename
	}
	if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// Image returns the decoded source, loading it if needed. Text images return nil.
func (i *Image) Image() (image.Image, error) {
	if _, ok := i.source.(*textSource); ok {
		return nil, nil
	}
	return i.loadImage()
}

// loadImage loads the image from the configured source
func (i *Image) loadImage() (image.Image, error) {
	if i.img != nil {
		return i.img, nil
	}

	var (
		img image.Image
		err error
	)
	switch {
	case i.path != "":
		img, err = decodeFile(i.path)
	case i.reader != nil:
		img, _, err = image.Decode(i.reader)
		if err != nil {
			err = fmt.Errorf("failed to decode image: %w", err)
		}
	default:
		return nil, fmt.Errorf("no image source configured")
	}
	if err != nil {
		return nil, err
	}

	i.img = img
	i.source = FromImage(img)
	return img, nil
}

// DecodeFile opens and decodes an image file in any registered format
func DecodeFile(path string) (image.Image, error) {
	return decodeFile(path)
}

func decodeFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Convenience functions for quick rendering

// Render converts an image with default settings
func Render(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("image cannot be nil")
	}
	return New(img).Render()
}

// RenderFile converts an image file with default settings
func RenderFile(path string) (string, error) {
	img, err := Open(path)
	if err != nil {
		return "", err
	}
	return img.Render()
}

// RenderText converts text with default settings
func RenderText(text string) (string, error) {
	return Text(text).Render()
}
