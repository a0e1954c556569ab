package state

import (
	"image/color"
	"time"

	"github.com/ItsNotACoffee/HoloPlayground/internal/paint"
)

// Stroke is a finished stroke as kept on the board.
type Stroke struct {
	ID      string
	Pointer paint.PointerID
	Space   paint.Space
	Points  []paint.Point
	Start   color.Color
	End     color.Color
	Width   float32
	Seq     uint64 // Lamport sequence, draw order
	Site    string
	Time    time.Time
}

// FromSnapshot converts a tracker snapshot.
func FromSnapshot(s paint.Snapshot) Stroke {
	return Stroke{
		ID:      s.ID,
		Pointer: s.Pointer,
		Space:   s.Space,
		Points:  s.Points,
		Start:   s.Style.Start.Color(),
		End:     s.Style.End.Color(),
		Width:   s.Style.Width,
	}
}
