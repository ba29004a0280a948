/*
Package braille converts images, or text rendered as an image, into Unicode
braille art. Every 2x4 block of pixels becomes one braille pattern character
(U+2800-U+28FF), so a 100 pixel wide raster prints as 50 characters.

The conversion pipeline is a pure function of the source and its parameters:

  - Quantize the output raster: the width is a number of cells derived from
    a base width and a scale, the height follows the source aspect ratio and
    is rounded up to whole 4-pixel cell rows
  - Resample the source to that raster with a pluggable Resizer
  - Extract luminance (0.3 R + 0.59 G + 0.11 B)
  - Stretch contrast so the darkest pixel is 0 and the brightest 255
  - Threshold every pixel and pack each 2x4 block into a dot mask
  - Drop near-empty rows and trailing blank cells

Main features:

  - Images in any format registered with image.Decode (PNG, JPEG, GIF, BMP, TIFF, WebP)
  - Text input rendered with the Go fonts or any OpenType font
  - Bilinear, Catmull-Rom, nearest-neighbor and Lanczos resampling
  - Optional parallel cell encoding
  - Background rendering for interactive front-ends

Basic Usage:

	// Simple one-liner
	art, err := braille.RenderFile("image.png")
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(art)

Fluent API:

	art, err := braille.New(img).
	    Scale(150).
	    Threshold(100).
	    Invert(true).
	    Render()

	// Text is rasterized first, then converted the same way
	err = braille.Text("Hello\nWorld").Scale(200).Print()

Pipeline API:

	doc, err := braille.Convert(braille.FromImage(img), braille.Params{
	    ScalePercent: 100,
	    Threshold:    128,
	})
	if errors.Is(err, braille.ErrOutOfRangeParameter) {
	    // rejected before any work was done
	}
	fmt.Printf("%s\n(%d characters)\n", doc.Text, doc.Length)

A Converter carries the collaborators used by Convert: the base width, the
Resizer, the TextRasterizer and the encoder worker count. Its zero value uses
the defaults and it is safe for concurrent use.
*/
package braille
