package paint

import "strings"

// PointerID identifies an input source for the duration of one gesture.
// Identifiers are supplied by the host and are unique while live.
type PointerID int64

// Kind of an Event.
type Kind uint8

const (
	// Down starts a gesture.
	Down Kind = iota + 1
	// Drag is delivered every tick the pointer is held.
	Drag
	// Up ends a gesture.
	Up
	// FocusExit reports that the pointer left the drawing surface. It
	// carries no pointer identifier.
	FocusExit
)

// Event is a pointer lifecycle notification delivered by the host input
// layer.
type Event struct {
	Kind      Kind
	PointerID PointerID
	// World is the pointer position in scene coordinates.
	World Point
	// Local is the hit position in the drawing surface's coordinate system.
	Local Point
}

// Sample resolves the coordinate to record for the given space.
func (e Event) Sample(s Space) Point {
	if s == WorldSpace {
		return e.World
	}
	return e.Local
}

func (k Kind) String() string {
	switch k {
	case Down:
		return "Down"
	case Drag:
		return "Drag"
	case Up:
		return "Up"
	case FocusExit:
		return "FocusExit"
	default:
		return "Unknown"
	}
}

// ParseKind is the inverse of Kind.String. Matching is case insensitive.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(s) {
	case "down":
		return Down, true
	case "drag":
		return Drag, true
	case "up":
		return Up, true
	case "focusexit", "focus_exit":
		return FocusExit, true
	}
	return 0, false
}
