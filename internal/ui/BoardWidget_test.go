package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"

	"github.com/ItsNotACoffee/HoloPlayground/internal/input"
	"github.com/ItsNotACoffee/HoloPlayground/internal/paint"
	"github.com/ItsNotACoffee/HoloPlayground/internal/state"
)

func newTestBoard(t *testing.T) (*BoardWidget, *paint.Tracker, *StrokeLayer) {
	t.Helper()
	test.NewTempApp(t)

	layer := NewStrokeLayer()
	tr, err := paint.New(layer, 0.01)
	if err != nil {
		t.Fatalf("paint.New: %v", err)
	}
	surface := state.NewSurface(state.DrawingArea{Width: 200, Height: 200})
	return NewBoardWidget(tr, input.NewQueue(), surface, layer), tr, layer
}

func mouse(x, y float32, button desktop.MouseButton) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y), AbsolutePosition: fyne.NewPos(x, y)},
		Button:     button,
	}
}

func TestBoardWidgetDrawsStroke(t *testing.T) {
	b, tr, layer := newTestBoard(t)

	b.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	b.Tick(0.02)
	if tr.Active() != 1 || layer.Len() != 1 {
		t.Fatalf("after down: active %d, drawables %d, want 1, 1", tr.Active(), layer.Len())
	}

	b.MouseMoved(mouse(20, 30, desktop.MouseButtonPrimary))
	b.Tick(0.02)
	s, ok := tr.Session(0)
	if !ok {
		t.Fatalf("no session for primary button")
	}
	if len(s.Points) != 1 || s.Points[0] != (paint.Point{20, 30, 0}) {
		t.Errorf("got points %v, want [[20 30 0]]", s.Points)
	}

	b.MouseUp(mouse(20, 30, desktop.MouseButtonPrimary))
	b.Tick(0.02)
	if tr.Active() != 0 {
		t.Errorf("got %d active sessions after release, want 0", tr.Active())
	}
}

func TestBoardWidgetButtonsArePointers(t *testing.T) {
	b, tr, _ := newTestBoard(t)

	b.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	b.MouseDown(mouse(50, 50, desktop.MouseButtonSecondary))
	b.Tick(0.02)
	if tr.Active() != 2 {
		t.Fatalf("got %d active sessions, want 2", tr.Active())
	}
	b.MouseUp(mouse(50, 50, desktop.MouseButtonSecondary))
	b.Tick(0.02)
	if _, ok := tr.Session(0); !ok {
		t.Errorf("releasing the secondary button ended the primary stroke")
	}
}

func TestBoardWidgetLeavingSurface(t *testing.T) {
	b, tr, _ := newTestBoard(t)

	b.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	b.Tick(0.02)
	b.MouseMoved(mouse(500, 500, desktop.MouseButtonPrimary))
	b.Tick(0.02)
	if tr.Drawing() {
		t.Errorf("still drawing after leaving the surface")
	}
	if tr.Active() != 1 {
		t.Errorf("got %d active sessions, want the session kept", tr.Active())
	}

	// Coming back starts a new stroke for the same button.
	b.MouseMoved(mouse(20, 20, desktop.MouseButtonPrimary))
	b.Tick(0.02)
	if got := len(tr.Strokes()); got != 2 {
		t.Errorf("got %d strokes after re-entering, want 2", got)
	}
}

func TestBoardWidgetPlacement(t *testing.T) {
	b, tr, layer := newTestBoard(t)
	tr.StartPlacement()

	b.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	b.MouseMoved(mouse(15, 30, desktop.MouseButtonPrimary))
	b.Tick(0.02)
	if b.surface.PanX != 5 || b.surface.PanY != 20 {
		t.Errorf("got pan (%v, %v), want (5, 20)", b.surface.PanX, b.surface.PanY)
	}
	if layer.Len() != 0 {
		t.Errorf("got %d drawables while placing, want 0", layer.Len())
	}

	b.MouseUp(mouse(15, 30, desktop.MouseButtonPrimary))
	if tr.Canvas().Placing {
		t.Errorf("placement still active after release")
	}
}

func TestBoardWidgetScrollZoomsWhileResizing(t *testing.T) {
	b, tr, _ := newTestBoard(t)
	tr.ToggleResize()

	b.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, 1)})
	if b.surface.Scale <= 1 {
		t.Errorf("got scale %v, want zoomed in", b.surface.Scale)
	}
}
