package state

import (
	"github.com/ItsNotACoffee/HoloPlayground/internal/paint"
)

const (
	minScale = 0.3
	maxScale = 3.0
)

// DrawingArea represents a rectangular area on the canvas
type DrawingArea struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

// Contains reports whether (x, y) lies inside the area, edges included.
func (a DrawingArea) Contains(x, y float32) bool {
	return x >= a.X && x <= a.X+a.Width &&
		y >= a.Y && y <= a.Y+a.Height
}

// Bounds returns the bounding box of points in the XY plane.
func Bounds(points []paint.Point) DrawingArea {
	if len(points) == 0 {
		return DrawingArea{}
	}
	minX, minY := points[0].X(), points[0].Y()
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = min(minX, p.X())
		maxX = max(maxX, p.X())
		minY = min(minY, p.Y())
		maxY = max(maxY, p.Y())
	}
	return DrawingArea{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Surface is the drawing board as placed in the host window: the drawable
// area in board coordinates plus the pan offset and zoom applied by board
// placement and resizing.
type Surface struct {
	Area       DrawingArea
	PanX, PanY float32
	Scale      float32
}

func NewSurface(area DrawingArea) *Surface {
	return &Surface{Area: area, Scale: 1}
}

// ToBoard maps a window position to board coordinates.
func (s *Surface) ToBoard(x, y float32) (float32, float32) {
	return (x - s.PanX) / s.Scale, (y - s.PanY) / s.Scale
}

// ToWindow maps board coordinates to a window position.
func (s *Surface) ToWindow(x, y float32) (float32, float32) {
	return x*s.Scale + s.PanX, y*s.Scale + s.PanY
}

// Inside reports whether a window position falls on the drawable area.
func (s *Surface) Inside(x, y float32) bool {
	bx, by := s.ToBoard(x, y)
	return s.Area.Contains(bx, by)
}

// Move pans the board by a window-space delta.
func (s *Surface) Move(dx, dy float32) {
	s.PanX += dx
	s.PanY += dy
}

// Zoom multiplies the scale by factor, clamped to [0.3, 3].
func (s *Surface) Zoom(factor float32) {
	s.Scale = min(max(s.Scale*factor, minScale), maxScale)
}

// ResetView restores the initial placement.
func (s *Surface) ResetView() {
	s.PanX, s.PanY, s.Scale = 0, 0, 1
}
