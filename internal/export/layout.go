package export

import (
	"github.com/gogpu/gg"

	"github.com/ItsNotACoffee/HoloPlayground/internal/paint"
	"github.com/ItsNotACoffee/HoloPlayground/internal/state"
)

// fit maps board coordinates into a w×h page with a margin, preserving the
// aspect ratio of the drawing. Z is dropped.
type fit struct {
	scale, offX, offY float64
	minX, minY        float64
}

func newFit(strokes []state.Stroke, w, h, margin float64) fit {
	var all []paint.Point
	for _, s := range strokes {
		all = append(all, s.Points...)
	}
	b := state.Bounds(all)
	f := fit{scale: 1, minX: float64(b.X), minY: float64(b.Y), offX: margin, offY: margin}
	bw, bh := float64(b.Width), float64(b.Height)
	aw, ah := w-2*margin, h-2*margin
	if bw > 0 || bh > 0 {
		sx, sy := aw/max(bw, 1e-9), ah/max(bh, 1e-9)
		f.scale = min(sx, sy)
	}
	// Center the drawing.
	f.offX += (aw - bw*f.scale) / 2
	f.offY += (ah - bh*f.scale) / 2
	return f
}

// layout holds one fit per coordinate frame. World and board coordinates
// are not comparable, so each frame is scaled onto the page on its own.
type layout map[paint.Space]fit

func newLayout(strokes []state.Stroke, w, h, margin float64) layout {
	bySpace := make(map[paint.Space][]state.Stroke)
	for _, s := range strokes {
		bySpace[s.Space] = append(bySpace[s.Space], s)
	}
	l := make(layout, len(bySpace))
	for space, group := range bySpace {
		l[space] = newFit(group, w, h, margin)
	}
	return l
}

// apply maps point p of stroke s onto the page.
func (l layout) apply(s state.Stroke, p paint.Point) (float64, float64) {
	return l[s.Space].apply(p)
}

func (f fit) apply(p paint.Point) (float64, float64) {
	return (float64(p.X())-f.minX)*f.scale + f.offX, (float64(p.Y())-f.minY)*f.scale + f.offY
}

// segmentColor interpolates the stroke gradient for segment i of n.
func segmentColor(s state.Stroke, i, n int) gg.RGBA {
	start, end := gg.FromColor(s.Start), gg.FromColor(s.End)
	if n <= 1 {
		return start
	}
	return start.Lerp(end, float64(i)/float64(n-1))
}
