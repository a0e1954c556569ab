package paint

import "github.com/gogpu/gg"

// Canvas holds the drawing modes set by the surrounding UI.
type Canvas struct {
	// Is3D samples world coordinates instead of surface-local ones and
	// disables drag recovery.
	Is3D bool
	// Resizing and Placing suspend drawing while the board is manipulated.
	Resizing bool
	Placing  bool
	// Rainbow gives each new stroke two random end colors.
	Rainbow bool
	// Color is the selected brush color used when Rainbow is off.
	Color Color
	// Width is the brush width of new strokes.
	Width float32
}

// DefaultCanvas is a 2-D canvas with a black brush.
func DefaultCanvas() Canvas {
	return Canvas{Color: gg.Black, Width: 0.5}
}

// Space returns the space new samples are taken in.
func (c Canvas) Space() Space { return SpaceFor(c.Is3D) }

// accepts reports whether pointer down and drag input is allowed.
func (c Canvas) accepts() bool { return !c.Resizing && !c.Placing }

func (c Canvas) style(r Rand) Style {
	if c.Rainbow {
		return Style{End: RandomColor(r), Start: RandomColor(r), Width: c.Width}
	}
	return Style{Start: c.Color, End: c.Color, Width: c.Width}
}
