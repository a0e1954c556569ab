package paint

import (
	"errors"
	"testing"

	"github.com/gogpu/gg"
)

type drawable struct {
	space     Space
	style     Style
	points    []Point
	destroyed bool
}

// recorder is a Renderer that keeps every drawable and counts calls.
type recorder struct {
	next      Handle
	drawables map[Handle]*drawable
	calls     int
}

func newRecorder() *recorder {
	return &recorder{drawables: make(map[Handle]*drawable)}
}

func (r *recorder) CreateStroke(space Space, style Style) Handle {
	r.calls++
	r.next++
	r.drawables[r.next] = &drawable{space: space, style: style}
	return r.next
}

func (r *recorder) UpdateStroke(h Handle, points []Point) {
	r.calls++
	r.drawables[h].points = points
}

func (r *recorder) DestroyStroke(h Handle) {
	r.calls++
	r.drawables[h].destroyed = true
}

// seq returns its values in order, cycling.
type seq struct {
	vals []float64
	i    int
}

func (s *seq) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

const interval = 0.125

func newTestTracker(t *testing.T, opts ...Option) (*Tracker, *recorder) {
	t.Helper()
	r := newRecorder()
	tr, err := New(r, interval, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tr, r
}

func down(id PointerID) Event { return Event{Kind: Down, PointerID: id} }
func up(id PointerID) Event   { return Event{Kind: Up, PointerID: id} }

func drag(id PointerID, x float32) Event {
	return Event{
		Kind:      Drag,
		PointerID: id,
		World:     Point{x, x, 10},
		Local:     Point{x, -x, 0},
	}
}

func TestNewValidates(t *testing.T) {
	if _, err := New(nil, interval); !errors.Is(err, ErrNilRenderer) {
		t.Errorf("New(nil) error = %v, want ErrNilRenderer", err)
	}
	if _, err := New(newRecorder(), 0); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("New with zero interval error = %v, want ErrInvalidInterval", err)
	}
}

func TestSinglePointerStroke(t *testing.T) {
	tr, r := newTestTracker(t)

	// Drags before the press are dropped: nothing is drawing yet, so in 2-D
	// the first drag begins a stroke. Use 3-D to keep it an orphan.
	tr.Toggle3D()
	tr.Update(interval, []Event{drag(1, 99)})
	if len(tr.Strokes()) != 0 {
		t.Fatalf("orphan drag created a stroke")
	}

	tr.Update(0, []Event{down(1)})
	tr.Update(interval, []Event{drag(1, 1)})
	tr.Update(interval/2, []Event{drag(1, 2)}) // rejected by the gate
	tr.Update(interval/2, []Event{drag(1, 3)})
	tr.Update(interval, []Event{drag(1, 4)})
	var ended []Snapshot
	tr.OnStrokeEnd(func(s Snapshot) { ended = append(ended, s) })
	tr.Update(0, []Event{up(1)})
	tr.Update(interval, []Event{drag(1, 5)})

	strokes := tr.Strokes()
	if len(strokes) != 1 {
		t.Fatalf("got %d strokes, want 1", len(strokes))
	}
	want := []Point{{1, 1, 10}, {3, 3, 10}, {4, 4, 10}}
	assertPoints(t, strokes[0].Points, want)
	if len(ended) != 1 || ended[0].ID != strokes[0].ID {
		t.Errorf("OnStrokeEnd got %v, want the finished stroke", ended)
	}
	if tr.Drawing() {
		t.Errorf("Drawing = true after the only pointer lifted")
	}
	d := r.drawables[1]
	if d.space != WorldSpace {
		t.Errorf("drawable space = %v, want world", d.space)
	}
	assertPoints(t, d.points, want)
}

func TestLocalSpaceSampling(t *testing.T) {
	tr, r := newTestTracker(t)
	tr.Update(0, []Event{down(3)})
	tr.Update(interval, []Event{drag(3, 2)})

	s, ok := tr.Session(3)
	if !ok {
		t.Fatalf("no session for pointer 3")
	}
	assertPoints(t, s.Points, []Point{{2, -2, 0}})
	if r.drawables[1].space != LocalSpace {
		t.Errorf("drawable space = %v, want local", r.drawables[1].space)
	}
}

func TestStrokeIsolation(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.Update(0, []Event{down(1), down(2)})
	for i := 1; i <= 4; i++ {
		x := float32(i)
		tr.Update(interval, []Event{drag(1, x), drag(2, 100+x)})
	}
	tr.Update(0, []Event{up(2)})
	tr.Update(interval, []Event{drag(1, 5), drag(2, 105)})

	one, ok := tr.Session(1)
	if !ok {
		t.Fatalf("pointer 1 lost its session")
	}
	assertPoints(t, one.Points, []Point{{1, -1, 0}, {2, -2, 0}, {3, -3, 0}, {4, -4, 0}, {5, -5, 0}})
	if _, ok := tr.Session(2); ok {
		t.Errorf("pointer 2 still holds a session after lifting")
	}
	strokes := tr.Strokes()
	if len(strokes) != 2 {
		t.Fatalf("got %d strokes, want 2", len(strokes))
	}
	for _, p := range strokes[1].Points {
		if p.X() < 100 {
			t.Errorf("pointer 2 stroke contains pointer 1 sample %v", p)
		}
	}
	if strokes[1].Pointer != 2 || len(strokes[1].Points) != 4 {
		t.Errorf("pointer 2 stroke = %d points for pointer %d, want 4 for pointer 2",
			len(strokes[1].Points), strokes[1].Pointer)
	}
}

func TestSharedSamplerClock(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.Update(0, []Event{down(1), down(2)})

	// Both pointers drag in the same ticks; the single gate admits or
	// rejects them together.
	for i := 0; i < 16; i++ {
		tr.Update(interval/4, []Event{drag(1, float32(i)), drag(2, float32(i))})
	}
	a, _ := tr.Session(1)
	b, _ := tr.Session(2)
	if len(a.Points) != 4 || len(b.Points) != 4 {
		t.Fatalf("got %d and %d points, want 4 each", len(a.Points), len(b.Points))
	}
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			t.Errorf("sample %d: pointer 1 at %v, pointer 2 at %v; want lockstep", i, a.Points[i], b.Points[i])
		}
	}

	// A tick advances the shared clock whichever pointer drags in it.
	tr.Update(interval/2, []Event{drag(1, 50)})
	tr.Update(interval/2, []Event{drag(2, 50)})
	a, _ = tr.Session(1)
	b, _ = tr.Session(2)
	if len(a.Points) != 4 || len(b.Points) != 5 {
		t.Errorf("got %d and %d points, want 4 and 5", len(a.Points), len(b.Points))
	}
}

func TestOnePointPerTick(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.Update(0, []Event{down(1), down(2)})

	// Several moves of the same pointer queued in one admitted tick.
	tr.Update(interval, []Event{drag(1, 1), drag(2, 1), drag(1, 2), drag(1, 3), drag(2, 2)})
	a, _ := tr.Session(1)
	b, _ := tr.Session(2)
	assertPoints(t, a.Points, []Point{{1, -1, 0}})
	assertPoints(t, b.Points, []Point{{1, -1, 0}})

	// Batching does not change the rate: 8 ticks of interval/2 give 4
	// points however many drags each tick carries.
	for i := 0; i < 8; i++ {
		x := float32(10 + i)
		tr.Update(interval/2, []Event{drag(1, x), drag(1, x+0.5), drag(1, x+0.25)})
	}
	a, _ = tr.Session(1)
	if len(a.Points) != 5 {
		t.Errorf("got %d points, want 5", len(a.Points))
	}
}

func TestOrphanDragKeepsCountdown(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.Toggle3D()

	// The interval elapses on a drag with no session; the next drag with a
	// session is sampled without waiting another interval.
	tr.Update(interval, []Event{drag(1, 1)})
	tr.Update(0, []Event{down(1)})
	tr.Update(0, []Event{drag(1, 2)})
	s, _ := tr.Session(1)
	assertPoints(t, s.Points, []Point{{2, 2, 10}})
}

func TestDragRecoveryAfterFocusExit(t *testing.T) {
	tr, r := newTestTracker(t)
	var ended []Snapshot
	tr.OnStrokeEnd(func(s Snapshot) { ended = append(ended, s) })

	tr.Update(0, []Event{down(1)})
	for i := 1; i <= 3; i++ {
		tr.Update(interval, []Event{drag(1, float32(i))})
	}
	old, _ := tr.Session(1)
	if len(old.Points) != 3 {
		t.Fatalf("got %d points before focus exit, want 3", len(old.Points))
	}

	tr.Update(0, []Event{{Kind: FocusExit}})
	if tr.Drawing() {
		t.Fatalf("Drawing = true after FocusExit")
	}
	if tr.Active() != 1 {
		t.Fatalf("FocusExit removed sessions: Active = %d, want 1", tr.Active())
	}

	tr.Update(interval/4, []Event{drag(1, 10)})
	fresh, ok := tr.Session(1)
	if !ok {
		t.Fatalf("recovery drag left pointer 1 without a session")
	}
	if fresh.ID == old.ID {
		t.Fatalf("recovery drag continued the old stroke")
	}
	if len(fresh.Points) != 0 {
		t.Errorf("new stroke has %d points, want 0", len(fresh.Points))
	}
	if !tr.Drawing() {
		t.Errorf("Drawing = false after recovery")
	}
	if len(ended) != 1 || ended[0].ID != old.ID || len(ended[0].Points) != 3 {
		t.Errorf("OnStrokeEnd got %+v, want the old stroke frozen at 3 points", ended)
	}

	tr.Update(interval, []Event{drag(1, 11)})
	strokes := tr.Strokes()
	if len(strokes) != 2 {
		t.Fatalf("got %d strokes, want 2", len(strokes))
	}
	if len(strokes[0].Points) != 3 {
		t.Errorf("old stroke grew to %d points", len(strokes[0].Points))
	}
	assertPoints(t, strokes[1].Points, []Point{{11, -11, 0}})
	if r.drawables[1].destroyed {
		t.Errorf("old stroke's drawable was destroyed by recovery")
	}
}

func TestNoRecoveryIn3D(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.Toggle3D()
	tr.Update(0, []Event{down(1)})
	tr.Update(interval, []Event{drag(1, 1)})
	tr.Update(0, []Event{{Kind: FocusExit}})
	tr.Update(interval, []Event{drag(1, 2)})

	strokes := tr.Strokes()
	if len(strokes) != 1 {
		t.Fatalf("got %d strokes, want 1", len(strokes))
	}
	assertPoints(t, strokes[0].Points, []Point{{1, 1, 10}, {2, 2, 10}})
}

func TestDuplicateDownStartsFresh(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.Update(0, []Event{down(4)})
	tr.Update(interval, []Event{drag(4, 1)})
	tr.Update(0, []Event{down(4)})
	tr.Update(interval, []Event{drag(4, 2)})

	strokes := tr.Strokes()
	if len(strokes) != 2 {
		t.Fatalf("got %d strokes, want 2", len(strokes))
	}
	assertPoints(t, strokes[0].Points, []Point{{1, -1, 0}})
	assertPoints(t, strokes[1].Points, []Point{{2, -2, 0}})
	if tr.Active() != 1 {
		t.Errorf("Active = %d, want 1", tr.Active())
	}
}

func TestSuspendedInput(t *testing.T) {
	for _, tc := range []struct {
		name    string
		suspend func(*Tracker)
		// upAllowed is true when pointer-up still ends sessions.
		upAllowed bool
	}{
		{"resize", func(tr *Tracker) { tr.ToggleResize() }, false},
		{"placement", func(tr *Tracker) { tr.StartPlacement() }, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tr, r := newTestTracker(t)
			tr.Update(0, []Event{down(1)})
			tr.Update(interval, []Event{drag(1, 1)})
			calls := r.calls

			tc.suspend(tr)
			tr.Update(interval, []Event{down(2), drag(2, 2), drag(1, 3), down(1)})
			if r.calls != calls {
				t.Errorf("renderer received %d calls while suspended", r.calls-calls)
			}
			if tr.Active() != 1 {
				t.Errorf("Active = %d, want 1", tr.Active())
			}

			tr.Update(0, []Event{up(1)})
			if _, ok := tr.Session(1); ok == tc.upAllowed {
				t.Errorf("session after up: present = %v, want %v", ok, !tc.upAllowed)
			}
			if r.calls != calls {
				t.Errorf("pointer up made renderer calls")
			}
		})
	}
}

func TestResumeAfterPlacement(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.StartPlacement()
	tr.Update(0, []Event{down(1)})
	tr.EndPlacement()
	tr.Update(interval, []Event{drag(1, 1)})

	// The down was ignored; the drag recovers into a new stroke in 2-D.
	s, ok := tr.Session(1)
	if !ok {
		t.Fatalf("no session after placement ended")
	}
	assertPoints(t, s.Points, []Point{{1, -1, 0}})
}

func TestRainbowColors(t *testing.T) {
	rnd := &seq{vals: []float64{0.25, 1, 0.5, 0}}
	tr, r := newTestTracker(t, WithRand(rnd))
	tr.SetColor(gg.Red)
	tr.SetWidth(2)

	tr.Update(0, []Event{down(1)})
	plain := r.drawables[1].style
	if plain.Start != gg.Red || plain.End != gg.Red || plain.Width != 2 {
		t.Errorf("style = %+v, want red to red at width 2", plain)
	}

	if !tr.ToggleRainbow() {
		t.Fatalf("ToggleRainbow = false, want true")
	}
	tr.Update(0, []Event{down(2)})
	rainbow := r.drawables[2].style
	if rainbow.Start == rainbow.End {
		t.Errorf("rainbow endpoints are equal: %+v", rainbow.Start)
	}
	for _, c := range []Color{rainbow.Start, rainbow.End} {
		if c == gg.Red {
			t.Errorf("rainbow stroke used the selected color")
		}
	}

	tr.ToggleRainbow()
	tr.Update(0, []Event{down(3)})
	if got := r.drawables[3].style; got.Start != gg.Red || got.End != gg.Red {
		t.Errorf("style after rainbow off = %+v, want red", got)
	}
}

func TestReset(t *testing.T) {
	tr, r := newTestTracker(t)
	resets := 0
	tr.OnReset(func() { resets++ })

	tr.Update(0, []Event{down(1), down(2)})
	tr.Update(interval, []Event{drag(1, 1), drag(2, 2)})
	tr.Update(0, []Event{up(2)})
	tr.Reset()

	for h, d := range r.drawables {
		if !d.destroyed {
			t.Errorf("drawable %d not destroyed by Reset", h)
		}
	}
	if tr.Active() != 0 || tr.Drawing() || len(tr.Strokes()) != 0 {
		t.Errorf("after Reset: Active = %d, Drawing = %v, strokes = %d",
			tr.Active(), tr.Drawing(), len(tr.Strokes()))
	}
	if resets != 1 {
		t.Errorf("OnReset ran %d times, want 1", resets)
	}

	// A second reset has nothing left to release.
	calls := r.calls
	tr.Reset()
	if r.calls != calls {
		t.Errorf("second Reset made %d renderer calls", r.calls-calls)
	}
}

func TestToggle3DKeepsStrokeSpace(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.Update(0, []Event{down(1)})
	tr.Update(interval, []Event{drag(1, 1)})
	tr.Toggle3D()
	tr.Update(interval, []Event{drag(1, 2)})

	s, _ := tr.Session(1)
	assertPoints(t, s.Points, []Point{{1, -1, 0}, {2, -2, 0}})
}

func TestUnknownEventIgnored(t *testing.T) {
	tr, r := newTestTracker(t)
	tr.Update(interval, []Event{{Kind: 0, PointerID: 1}, {Kind: 42}})
	if r.calls != 0 || tr.Active() != 0 {
		t.Errorf("unknown events changed state")
	}
}

func assertPoints(t *testing.T, got, want []Point) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d points %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
}
