package world

import "image/color"

// Template is a palette entry used to stamp out cells during generation.
// Immutable after construction apart from the derived Threshold.
type Template struct {
	Weight    int
	Threshold float64 // cumulative probability, derived by Normalise
	Name      string
	Color     color.NRGBA
	Type      Type
	Strength  float64
	Range     float64
}

// Palette is the configured set of cell templates and their relative
// generation weights.
type Palette []Template

// DefaultPalette returns the standard four-entry palette.
func DefaultPalette() Palette {
	return Palette{
		{Weight: 85, Name: "Free", Color: color.NRGBA{R: 121, G: 255, B: 116, A: 255}, Type: TypeFree},
		{Weight: 10, Name: "Obstructed", Color: color.NRGBA{R: 81, A: 255}, Type: TypeObstructed, Strength: 4, Range: 5},
		{Weight: 4, Name: "Undesirable", Color: color.NRGBA{R: 255, G: 127, B: 39, A: 255}, Type: TypeUndesirable, Strength: 3, Range: 10},
		{Weight: 1, Name: "Desirable", Color: color.NRGBA{G: 81, A: 255}, Type: TypeDesirable, Strength: -10, Range: 60},
	}
}

// Normalise converts entry weights into cumulative probability thresholds.
// The final threshold is pinned to 1 so every roll in [0, 1] lands on an
// entry. All-zero weights are treated as equal weights.
func (p Palette) Normalise() {
	if len(p) == 0 {
		return
	}
	total := 0
	for i := range p {
		total += p[i].Weight
	}
	acc := 0.0
	for i := range p {
		if total > 0 {
			acc += float64(p[i].Weight) / float64(total)
		} else {
			acc += 1 / float64(len(p))
		}
		p[i].Threshold = acc
	}
	p[len(p)-1].Threshold = 1
}

// Pick returns the first template whose cumulative threshold covers the
// uniform roll in [0, 1]. Requires a prior Normalise call.
func (p Palette) Pick(roll float64) *Template {
	if len(p) == 0 {
		return nil
	}
	for i := range p {
		if roll <= p[i].Threshold {
			return &p[i]
		}
	}
	return &p[len(p)-1]
}
