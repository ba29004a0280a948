package braille

import (
	"sync"
)

// BlankCell is the empty braille pattern, U+2800
const BlankCell rune = '\u2800'

// DefaultEncodingWorkers is the worker count used when parallel encoding is
// requested without an explicit count.
const DefaultEncodingWorkers = 4

// minRowsPerWorker keeps small grids on a single goroutine
const minRowsPerWorker = 16

// dotOffsets maps mask bit n to the (dx, dy) pixel it samples inside a cell.
// Left column is dots 1-2-3, right column dots 4-5-6, then 7 and 8 along the
// bottom row, matching the Unicode braille block.
//
//	+------+
//	|(0)(3)|
//	|(1)(4)|
//	|(2)(5)|
//	|(6)(7)|
//	+------+
var dotOffsets = [8]struct{ dx, dy int }{
	{0, 0}, // bit 0, dot 1
	{0, 1}, // bit 1, dot 2
	{0, 2}, // bit 2, dot 3
	{1, 0}, // bit 3, dot 4
	{1, 1}, // bit 4, dot 5
	{1, 2}, // bit 5, dot 6
	{0, 3}, // bit 6, dot 7
	{1, 3}, // bit 7, dot 8
}

// Line is one row of encoded cells
type Line []rune

func (l Line) String() string {
	return string(l)
}

// NonBlank counts the cells that carry at least one dot
func (l Line) NonBlank() int {
	n := 0
	for _, r := range l {
		if r != BlankCell {
			n++
		}
	}
	return n
}

// CellRune returns the braille codepoint for an 8-bit dot mask
func CellRune(mask uint8) rune {
	return BlankCell + rune(mask)
}

// CellMask builds the dot mask for the cell whose top-left pixel is (x, y).
// Samples outside the grid never set a bit.
func CellMask(grid *LuminanceGrid, x, y int, threshold uint8, invert bool) uint8 {
	var mask uint8
	for bit, off := range dotOffsets {
		px, py := x+off.dx, y+off.dy
		if px >= grid.Width || py >= grid.Height {
			continue
		}
		on := grid.Pix[py*grid.Width+px] < threshold
		if invert {
			on = !on
		}
		if on {
			mask |= 1 << bit
		}
	}
	return mask
}

// Encode converts grid into one Line per 4-pixel row band, top to bottom.
// Rows without any dots are kept; see Optimize.
func Encode(grid *LuminanceGrid, threshold uint8, invert bool) []Line {
	lines := make([]Line, cellRows(grid))
	for row := range lines {
		lines[row] = encodeRow(grid, row, threshold, invert)
	}
	return lines
}

// ParallelEncode is Encode with row bands spread over workers goroutines.
// Every worker reads a disjoint band of the grid and writes its own slots of
// the result, so no locking is needed. The output is identical to Encode.
func ParallelEncode(grid *LuminanceGrid, threshold uint8, invert bool, workers int) []Line {
	rows := cellRows(grid)
	if workers <= 0 {
		workers = DefaultEncodingWorkers
	}
	if workers == 1 || rows < minRowsPerWorker*2 {
		// For small grids, single-threaded is faster
		return Encode(grid, threshold, invert)
	}

	lines := make([]Line, rows)

	var wg sync.WaitGroup
	numWorkers := min(workers, (rows+minRowsPerWorker-1)/minRowsPerWorker)

	jobs := make(chan int, rows)

	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for row := range jobs {
				lines[row] = encodeRow(grid, row, threshold, invert)
			}
		}()
	}

	for row := range rows {
		jobs <- row
	}
	close(jobs)

	wg.Wait()
	return lines
}

func encodeRow(grid *LuminanceGrid, row int, threshold uint8, invert bool) Line {
	y := row * CellHeight
	line := make(Line, 0, (grid.Width+CellWidth-1)/CellWidth)
	for x := 0; x < grid.Width; x += CellWidth {
		line = append(line, CellRune(CellMask(grid, x, y, threshold, invert)))
	}
	return line
}

func cellRows(grid *LuminanceGrid) int {
	return (grid.Height + CellHeight - 1) / CellHeight
}
