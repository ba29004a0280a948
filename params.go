package braille

import "fmt"

// Defaults for a single conversion
const (
	DefaultScalePercent = 100
	DefaultThreshold    = 128
	DefaultBaseWidth    = 50 // output width in cells at 100% scale
)

// Params controls a single conversion. The zero value is not valid; start
// from DefaultParams.
type Params struct {
	// ScalePercent scales the base cell width (100 = base width)
	ScalePercent int
	// Threshold is the gray cutoff, 0-255. Samples darker than it become dots.
	Threshold int
	// Invert flips the dot test so bright samples become dots
	Invert bool
}

// DefaultParams returns the parameters used when none are given
func DefaultParams() Params {
	return Params{
		ScalePercent: DefaultScalePercent,
		Threshold:    DefaultThreshold,
	}
}

// Validate rejects out of range parameters. Values are never clamped.
func (p Params) Validate() error {
	if p.ScalePercent <= 0 {
		return fmt.Errorf("scale %d%% must be positive: %w", p.ScalePercent, ErrOutOfRangeParameter)
	}
	if p.Threshold < 0 || p.Threshold > 255 {
		return fmt.Errorf("threshold %d outside [0,255]: %w", p.Threshold, ErrOutOfRangeParameter)
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("scale=%d%% threshold=%d invert=%t", p.ScalePercent, p.Threshold, p.Invert)
}
