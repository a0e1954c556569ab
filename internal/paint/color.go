package paint

import (
	"image/color"

	"github.com/gogpu/gg"
)

// Color is a straight-alpha RGBA color with components in [0, 1].
type Color = gg.RGBA

// Style is fixed when a stroke is created.
type Style struct {
	Start Color
	End   Color
	Width float32
}

// Rand is the source of randomness for rainbow strokes. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
}

// RandomColor draws a fully saturated color with a uniformly random hue and
// a value in [0.5, 1].
func RandomColor(r Rand) Color {
	hue := r.Float64() * 360
	value := 0.5 + r.Float64()*0.5
	// HSV with full saturation maps to HSL with the same hue, full
	// saturation and lightness v/2.
	return gg.HSL(hue, 1, value/2)
}

// ColorOf converts any color.Color.
func ColorOf(c color.Color) Color {
	return gg.FromColor(c)
}
