package paint

import "github.com/go-gl/mathgl/mgl32"

// Point is a sample coordinate. 2-D strokes leave Z at zero.
type Point = mgl32.Vec3

// Space selects the coordinate frame a stroke is sampled in and the parent
// its visual is attached to.
type Space uint8

const (
	// LocalSpace is relative to the drawing surface (2-D mode).
	LocalSpace Space = iota
	// WorldSpace is absolute scene coordinates (3-D mode).
	WorldSpace
)

func (s Space) String() string {
	switch s {
	case LocalSpace:
		return "local"
	case WorldSpace:
		return "world"
	default:
		return "unknown"
	}
}

// SpaceFor maps the canvas 3-D flag to the space samples are taken in.
func SpaceFor(is3D bool) Space {
	if is3D {
		return WorldSpace
	}
	return LocalSpace
}
