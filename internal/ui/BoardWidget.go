package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/ItsNotACoffee/HoloPlayground/internal/input"
	"github.com/ItsNotACoffee/HoloPlayground/internal/paint"
	"github.com/ItsNotACoffee/HoloPlayground/internal/state"
)

// pixelsPerUnit converts brush width to line width in pixels.
const pixelsPerUnit = 4

// BoardWidget is the drawing surface. Mouse buttons act as independent
// pointers: primary is pointer 0, secondary pointer 1, tertiary pointer 2.
// Input is queued and consumed by the tracker on the next tick.
type BoardWidget struct {
	widget.BaseWidget
	tracker   *paint.Tracker
	queue     *input.Queue
	surface   *state.Surface
	layer     *StrokeLayer
	pressed   map[desktop.MouseButton]bool
	inside    bool
	// last is the previous cursor position, for placement drags.
	last      fyne.Position
	statusBar *widget.Label
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)
var _ fyne.Scrollable = (*BoardWidget)(nil)

func NewBoardWidget(tr *paint.Tracker, q *input.Queue, s *state.Surface, l *StrokeLayer) *BoardWidget {
	b := &BoardWidget{
		tracker:   tr,
		queue:     q,
		surface:   s,
		layer:     l,
		pressed:   make(map[desktop.MouseButton]bool),
		statusBar: widget.NewLabel("Ready"),
	}
	b.ExtendBaseWidget(b)
	return b
}

func pointerFor(button desktop.MouseButton) (paint.PointerID, bool) {
	switch button {
	case desktop.MouseButtonPrimary:
		return 0, true
	case desktop.MouseButtonSecondary:
		return 1, true
	case desktop.MouseButtonTertiary:
		return 2, true
	}
	return 0, false
}

func (b *BoardWidget) event(kind paint.Kind, id paint.PointerID, ev *desktop.MouseEvent) paint.Event {
	lx, ly := b.surface.ToBoard(ev.Position.X, ev.Position.Y)
	return paint.Event{
		Kind:      kind,
		PointerID: id,
		World:     paint.Point{ev.AbsolutePosition.X, ev.AbsolutePosition.Y, 0},
		Local:     paint.Point{lx, ly, 0},
	}
}

func (b *BoardWidget) MouseDown(ev *desktop.MouseEvent) {
	id, ok := pointerFor(ev.Button)
	if !ok {
		return
	}
	b.pressed[ev.Button] = true
	b.last = ev.Position
	b.inside = b.surface.Inside(ev.Position.X, ev.Position.Y)
	if !b.inside {
		return
	}
	b.queue.Push(b.event(paint.Down, id, ev))
}

func (b *BoardWidget) MouseUp(ev *desktop.MouseEvent) {
	id, ok := pointerFor(ev.Button)
	if !ok {
		return
	}
	delete(b.pressed, ev.Button)
	if b.tracker.Canvas().Placing {
		// Placement ends with the tap that drops the board.
		b.tracker.EndPlacement()
		b.SetStatus("Board placed")
	}
	b.queue.Push(b.event(paint.Up, id, ev))
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}

func (b *BoardWidget) MouseMoved(ev *desktop.MouseEvent) {
	if len(b.pressed) == 0 {
		return
	}
	delta := ev.Position.Subtract(b.last)
	b.last = ev.Position
	if b.tracker.Canvas().Placing {
		// Dragging while placing moves the board.
		b.surface.Move(delta.X, delta.Y)
		b.Refresh()
		return
	}
	inside := b.surface.Inside(ev.Position.X, ev.Position.Y)
	if !inside {
		if b.inside {
			b.queue.Push(paint.Event{Kind: paint.FocusExit})
		}
		b.inside = false
		return
	}
	b.inside = true
	for button := range b.pressed {
		if id, ok := pointerFor(button); ok {
			b.queue.Push(b.event(paint.Drag, id, ev))
		}
	}
}

func (b *BoardWidget) MouseOut() {
	if b.inside {
		b.queue.Push(paint.Event{Kind: paint.FocusExit})
	}
	b.inside = false
}

// Scrolled zooms the board while resizing and pans it otherwise.
func (b *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	if b.tracker.Canvas().Resizing {
		if e.Scrolled.DY > 0 {
			b.surface.Zoom(1.2)
		} else {
			b.surface.Zoom(1 / 1.2)
		}
	} else {
		b.surface.Move(e.Scrolled.DX, e.Scrolled.DY)
	}
	b.Refresh()
}

func (b *BoardWidget) SetStatus(text string) {
	fyne.Do(func() {
		b.statusBar.SetText(text)
	})
}

// Status returns the status bar shown under the board.
func (b *BoardWidget) Status() *widget.Label { return b.statusBar }

// Tick runs one tracker update with the queued input and redraws if any
// stroke changed. It must run on the UI goroutine.
func (b *BoardWidget) Tick(dt float64) {
	b.tracker.Update(dt, b.queue.Drain())
	if b.layer.takeDirty() {
		b.Refresh()
	}
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	r.surface = canvas.NewRectangle(color.NRGBA{R: 245, G: 246, B: 248, A: 255})
	r.surface.StrokeColor = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
	r.surface.StrokeWidth = 1
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	surface    *canvas.Rectangle
	lines      []fyne.CanvasObject
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	objects := []fyne.CanvasObject{r.background, r.surface}
	return append(objects, r.lines...)
}

// rebuild lays out the surface and turns every stroke into line segments.
func (r *boardWidgetRenderer) rebuild() {
	s := r.board.surface
	x0, y0 := s.ToWindow(s.Area.X, s.Area.Y)
	r.surface.Move(fyne.NewPos(x0, y0))
	r.surface.Resize(fyne.NewSize(s.Area.Width*s.Scale, s.Area.Height*s.Scale))

	r.lines = r.lines[:0]
	r.board.layer.each(func(st *strokeData) {
		n := len(st.points) - 1
		for i := 0; i < n; i++ {
			t := 0.0
			if n > 1 {
				t = float64(i) / float64(n-1)
			}
			segment := canvas.NewLine(st.style.Start.Lerp(st.style.End, t).Color())
			segment.StrokeWidth = st.style.Width * pixelsPerUnit * r.scaleFor(st.space)
			segment.Position1 = r.position(st.space, st.points[i])
			segment.Position2 = r.position(st.space, st.points[i+1])
			r.lines = append(r.lines, segment)
		}
	})
}

// World strokes are not attached to the board, so pan and zoom do not apply
// to them.
func (r *boardWidgetRenderer) position(space paint.Space, p paint.Point) fyne.Position {
	if space == paint.WorldSpace {
		return fyne.NewPos(p.X(), p.Y())
	}
	x, y := r.board.surface.ToWindow(p.X(), p.Y())
	return fyne.NewPos(x, y)
}

func (r *boardWidgetRenderer) scaleFor(space paint.Space) float32 {
	if space == paint.WorldSpace {
		return 1
	}
	return r.board.surface.Scale
}

func (r *boardWidgetRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.board)
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.rebuild()
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardWidgetRenderer) Destroy() {}
