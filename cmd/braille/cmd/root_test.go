package cmd

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	braille "github.com/blacktop/go-braille"
)

func resetFlags(t *testing.T) {
	t.Helper()
	origCopy := copyToClipboard
	t.Cleanup(func() {
		verbose, invert, copyOut, fit = false, false, false, false
		scale = braille.DefaultScalePercent
		threshold = braille.DefaultThreshold
		baseWidth = braille.DefaultBaseWidth
		filter = "bilinear"
		text, output = "", ""
		workers = 1
		copyToClipboard = origCopy
	})
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func createTestPNG(t *testing.T, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := range 20 {
		for x := range 20 {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "test.png")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, png.Encode(file, img))
	return path
}

func TestFitScale(t *testing.T) {
	tests := []struct {
		name      string
		scale     int
		baseWidth int
		cols      int
		want      int
	}{
		{name: "fits already", scale: 100, baseWidth: 50, cols: 80, want: 100},
		{name: "capped to terminal", scale: 200, baseWidth: 50, cols: 80, want: 160},
		{name: "unknown width", scale: 300, baseWidth: 50, cols: 0, want: 300},
		{name: "tiny terminal", scale: 100, baseWidth: 500, cols: 4, want: 1},
		{name: "bad base width", scale: 100, baseWidth: 0, cols: 80, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fitScale(tt.scale, tt.baseWidth, tt.cols))
		})
	}
}

func TestNewImage(t *testing.T) {
	resetFlags(t)

	_, err := newImage(nil, nil)
	assert.Error(t, err, "no input")

	text = "hi"
	_, err = newImage([]string{"a.png"}, nil)
	assert.Error(t, err, "both inputs")

	img, err := newImage(nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, img)

	text = ""
	img, err = newImage([]string{"-"}, strings.NewReader(""))
	require.NoError(t, err)
	assert.NotNil(t, img)
}

func TestRootPrintsImage(t *testing.T) {
	path := createTestPNG(t, color.Black)

	out, err := execute(t, "--filter", "nearest", "--scale", "20", path)
	require.NoError(t, err)

	rows := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, rows, 10)
	assert.Equal(t, strings.Repeat("⣿", 10), rows[0])
}

func TestRootText(t *testing.T) {
	out, err := execute(t, "--text", "Hi")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))
}

func TestRootOutputFile(t *testing.T) {
	path := createTestPNG(t, color.Black)
	dst := filepath.Join(t.TempDir(), "art.txt")

	out, err := execute(t, "-f", "nearest", "-s", "20", "-o", dst, path)
	require.NoError(t, err)
	assert.Empty(t, out, "nothing printed when saving")

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), strings.Repeat("⣿", 10)+"\n"))
}

func TestRootCopy(t *testing.T) {
	path := createTestPNG(t, color.Black)

	var copied string
	resetFlags(t)
	copyToClipboard = func(s string) error {
		copied = s
		return nil
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"-f", "nearest", "-s", "20", "--copy", path})
	require.NoError(t, rootCmd.Execute())

	assert.Empty(t, out.String())
	assert.Equal(t, 10, strings.Count(copied, "\n")+1)

	copyToClipboard = func(string) error { return errors.New("no clipboard") }
	rootCmd.SetArgs([]string{"--copy", path})
	assert.ErrorContains(t, rootCmd.Execute(), "no clipboard")
}

func TestRootErrors(t *testing.T) {
	path := createTestPNG(t, color.White)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no input", args: []string{}, want: "required"},
		{name: "missing file", args: []string{"/nonexistent/file.png"}, want: "failed to open file"},
		{name: "bad threshold", args: []string{"--threshold", "300", path}, want: braille.ErrOutOfRangeParameter.Error()},
		{name: "bad scale", args: []string{"--scale", "0", path}, want: braille.ErrOutOfRangeParameter.Error()},
		{name: "bad filter", args: []string{"--filter", "bicubic", path}, want: "unknown resize filter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
