package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"os"
	"strings"

	braille "github.com/blacktop/go-braille"
)

func main() {
	if len(os.Args) > 1 {
		// If a file is provided, render it
		renderFile(os.Args[1])
	} else {
		// Otherwise, create a test pattern
		renderTestPattern()
	}
	renderText()
}

func renderFile(path string) {
	fmt.Printf("Rendering image: %s\n\n", path)

	// Simple one-liner to render a file
	out, err := braille.RenderFile(path)
	if err != nil {
		log.Fatalf("Error rendering file: %v", err)
	}
	fmt.Println(out)

	fmt.Println("\n\nUsing fluent API with custom settings:")

	// More complex example with configuration
	img, err := braille.Open(path)
	if err != nil {
		log.Fatalf("Error opening file: %v", err)
	}

	err = img.
		Scale(150).
		Threshold(100).
		Resizer(braille.Lanczos).
		Print()

	if err != nil {
		log.Fatalf("Error rendering with fluent API: %v", err)
	}
}

func renderTestPattern() {
	fmt.Print("Creating test pattern...\n\n")

	// Create a colorful test pattern
	img := createTestPattern()

	// Sweep the threshold
	for _, threshold := range []int{64, 128, 192} {
		fmt.Printf("\n=== Threshold %d ===\n", threshold)
		doc, err := braille.New(img).
			Scale(80).
			Threshold(threshold).
			Document()

		if err != nil {
			fmt.Printf("Error with threshold %d: %v\n", threshold, err)
		} else {
			fmt.Println(doc.Text)
			fmt.Printf("\n%d characters, %d lines\n", doc.Length, doc.Lines)
		}

		fmt.Print(strings.Repeat("-", 50) + "\n")
	}

	fmt.Println("\n=== Configuration Examples ===")

	fmt.Println("\nInverted:")
	err := braille.New(img).
		Scale(60).
		Invert(true).
		Print()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
	}

	fmt.Println("\nNearest neighbor, narrow base width:")
	err = braille.New(img).
		BaseWidth(30).
		Resizer(braille.Nearest).
		Print()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
	}
}

func renderText() {
	fmt.Println("\n=== Text ===")
	out, err := braille.RenderText("Hello,\nbraille!")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(out)
}

func createTestPattern() image.Image {
	const size = 200
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	// Create a gradient pattern
	for y := range size {
		for x := range size {
			r := uint8((x * 255) / size)
			g := uint8((y * 255) / size)
			b := uint8(((x + y) * 255) / (2 * size))
			img.Set(x, y, color.RGBA{r, g, b, 255})
		}
	}

	// Dark squares stay solid at every threshold
	draw.Draw(img, image.Rect(20, 20, 60, 60),
		&image.Uniform{color.RGBA{20, 0, 0, 255}},
		image.Point{}, draw.Src)

	draw.Draw(img, image.Rect(140, 20, 180, 60),
		&image.Uniform{color.RGBA{0, 40, 0, 255}},
		image.Point{}, draw.Src)

	// Blue square
	draw.Draw(img, image.Rect(20, 140, 60, 180),
		&image.Uniform{color.RGBA{0, 0, 255, 255}},
		image.Point{}, draw.Src)

	// White square
	draw.Draw(img, image.Rect(140, 140, 180, 180),
		&image.Uniform{color.RGBA{255, 255, 255, 255}},
		image.Point{}, draw.Src)

	return img
}
