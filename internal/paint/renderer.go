package paint

// Renderer displays strokes. Calls are made from the tracker's update tick
// only.
type Renderer interface {
	// CreateStroke allocates a drawable under the parent for space.
	CreateStroke(space Space, style Style) Handle
	// UpdateStroke replaces the drawable's polyline with points.
	UpdateStroke(h Handle, points []Point)
	// DestroyStroke releases the drawable.
	DestroyStroke(h Handle)
}
