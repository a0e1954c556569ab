package paint

import (
	"github.com/google/uuid"
)

// Handle is an opaque reference to a drawable created by a Renderer.
type Handle uint64

// Stroke is one continuous polyline produced by a single pointer gesture.
// Its points are append-only and it is owned by exactly one pointer.
type Stroke struct {
	ID      string
	Pointer PointerID
	Space   Space
	Style   Style

	points []Point
	handle Handle
}

func newStroke(id PointerID, space Space, style Style) *Stroke {
	return &Stroke{
		ID:      uuid.NewString(),
		Pointer: id,
		Space:   space,
		Style:   style,
	}
}

func (s *Stroke) append(p Point) {
	s.points = append(s.points, p)
}

// Len returns the number of sampled points.
func (s *Stroke) Len() int { return len(s.points) }

// Points returns a copy of the sampled points in draw order.
func (s *Stroke) Points() []Point {
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}

// Handle returns the renderer handle backing the stroke.
func (s *Stroke) Handle() Handle { return s.handle }

// Snapshot is an immutable copy of a Stroke.
type Snapshot struct {
	ID      string
	Pointer PointerID
	Space   Space
	Style   Style
	Points  []Point
}

// Snapshot copies the stroke's current state.
func (s *Stroke) Snapshot() Snapshot {
	return Snapshot{
		ID:      s.ID,
		Pointer: s.Pointer,
		Space:   s.Space,
		Style:   s.Style,
		Points:  s.Points(),
	}
}
