package braille

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStretchesToFullRange(t *testing.T) {
	grid := &LuminanceGrid{Pix: []uint8{10, 20, 30, 15}, Width: 2, Height: 2}

	out := Normalize(grid)

	assert.Equal(t, []uint8{0, 128, 255, 64}, out.Pix)
	assert.Equal(t, []uint8{10, 20, 30, 15}, grid.Pix, "input must not be modified")
}

func TestNormalizeFlatGridUnchanged(t *testing.T) {
	for _, v := range []uint8{0, 77, 255} {
		grid := NewLuminanceGrid(4, 4).Fill(v)

		out := Normalize(grid)

		assert.Equal(t, grid.Pix, out.Pix)
		assert.NotSame(t, grid, out)
	}
}

func TestNormalizeRangeProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 50; i++ {
		w, h := 1+rng.Intn(30), 1+rng.Intn(30)
		grid := NewLuminanceGrid(w, h)
		for j := range grid.Pix {
			grid.Pix[j] = uint8(rng.Intn(256))
		}
		lo, hi := grid.MinMax()
		if lo == hi {
			continue
		}

		out := Normalize(grid)
		lo, hi = out.MinMax()
		require.Equal(t, uint8(0), lo)
		require.Equal(t, uint8(255), hi)
	}
}

func TestNormalizeOutlierShiftsEverything(t *testing.T) {
	// A single bright pixel widens the range and darkens the rest
	grid := NewLuminanceGrid(4, 1)
	copy(grid.Pix, []uint8{100, 110, 120, 130})
	without := Normalize(grid)

	grid.Pix[3] = 250
	with := Normalize(grid)

	assert.Greater(t, without.Pix[1], with.Pix[1])
	assert.Greater(t, without.Pix[2], with.Pix[2])
}

func TestNormalizeInPlaceReportsChange(t *testing.T) {
	flat := NewLuminanceGrid(2, 2).Fill(9)
	assert.False(t, flat.normalize())

	grid := &LuminanceGrid{Pix: []uint8{1, 2}, Width: 2, Height: 1}
	assert.True(t, grid.normalize())
	assert.Equal(t, []uint8{0, 255}, grid.Pix)
}
