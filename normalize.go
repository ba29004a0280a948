package braille

// Normalize returns a copy of grid linearly stretched so its darkest sample
// maps to 0 and its brightest to 255. A flat grid is copied unchanged.
//
// The stretch is global: a single outlier moves every other sample.
func Normalize(grid *LuminanceGrid) *LuminanceGrid {
	out := grid.Clone()
	out.normalize()
	return out
}

// normalize stretches g in place and reports whether anything changed
func (g *LuminanceGrid) normalize() bool {
	lo, hi := g.MinMax()
	if hi == lo {
		return false
	}

	// precompute the mapping; there are at most 256 distinct inputs
	var lut [256]uint8
	span := int(hi) - int(lo)
	for v := int(lo); v <= int(hi); v++ {
		lut[v] = uint8(((v-int(lo))*255 + span/2) / span)
	}
	for i, v := range g.Pix {
		g.Pix[i] = lut[v]
	}
	return true
}
