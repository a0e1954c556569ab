package ui

import (
	"github.com/ItsNotACoffee/HoloPlayground/internal/paint"
)

// strokeData is what the layer keeps per drawable.
type strokeData struct {
	space  paint.Space
	style  paint.Style
	points []paint.Point
}

// StrokeLayer is the paint.Renderer behind the board widget. It stores the
// polylines handed over by the tracker; the widget renderer turns them into
// canvas lines. Like the tracker it is only touched from the UI goroutine.
type StrokeLayer struct {
	next    paint.Handle
	strokes map[paint.Handle]*strokeData
	order   []paint.Handle
	dirty   bool
}

var _ paint.Renderer = (*StrokeLayer)(nil)

func NewStrokeLayer() *StrokeLayer {
	return &StrokeLayer{strokes: make(map[paint.Handle]*strokeData)}
}

func (l *StrokeLayer) CreateStroke(space paint.Space, style paint.Style) paint.Handle {
	l.next++
	l.strokes[l.next] = &strokeData{space: space, style: style}
	l.order = append(l.order, l.next)
	l.dirty = true
	return l.next
}

func (l *StrokeLayer) UpdateStroke(h paint.Handle, points []paint.Point) {
	s, ok := l.strokes[h]
	if !ok {
		return
	}
	s.points = points
	l.dirty = true
}

func (l *StrokeLayer) DestroyStroke(h paint.Handle) {
	if _, ok := l.strokes[h]; !ok {
		return
	}
	delete(l.strokes, h)
	for i, o := range l.order {
		if o == h {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	l.dirty = true
}

// Len returns the number of live drawables.
func (l *StrokeLayer) Len() int { return len(l.order) }

// each visits drawables in creation order.
func (l *StrokeLayer) each(fn func(*strokeData)) {
	for _, h := range l.order {
		fn(l.strokes[h])
	}
}

// takeDirty reports and clears the pending-change flag.
func (l *StrokeLayer) takeDirty() bool {
	d := l.dirty
	l.dirty = false
	return d
}
