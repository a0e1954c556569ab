package paint

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
)

// ErrNilRenderer is returned by New when no renderer is supplied.
var ErrNilRenderer = errors.New("paint: nil renderer")

// Tracker turns pointer lifecycle events into strokes, one live stroke per
// pointer. It is driven by Update once per tick and is not safe for
// concurrent use.
type Tracker struct {
	renderer Renderer
	registry *Registry
	sampler  *Sampler
	canvas   Canvas
	rand     Rand

	// drawing is set while at least one stroke is being extended. Losing
	// focus clears it so the next drag starts a fresh stroke.
	drawing bool
	// strokes holds every stroke created since the last reset in draw
	// order; their handles are released by Reset.
	strokes []*Stroke

	onStrokeEnd func(Snapshot)
	onReset     func()
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithCanvas sets the initial canvas modes.
func WithCanvas(c Canvas) Option {
	return func(t *Tracker) { t.canvas = c }
}

// WithRand sets the randomness used for rainbow strokes.
func WithRand(r Rand) Option {
	return func(t *Tracker) { t.rand = r }
}

// New returns a tracker that samples at most once per interval seconds
// and draws through r.
func New(r Renderer, interval float64, opts ...Option) (*Tracker, error) {
	if r == nil {
		return nil, ErrNilRenderer
	}
	sampler, err := NewSampler(interval)
	if err != nil {
		return nil, fmt.Errorf("new tracker: %w", err)
	}
	t := &Tracker{
		renderer: r,
		registry: NewRegistry(),
		sampler:  sampler,
		canvas:   DefaultCanvas(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.rand == nil {
		t.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return t, nil
}

// OnStrokeEnd registers fn to receive a stroke once its pointer releases
// it, either by lifting or by starting over.
func (t *Tracker) OnStrokeEnd(fn func(Snapshot)) { t.onStrokeEnd = fn }

// OnReset registers fn to run after Reset.
func (t *Tracker) OnReset(fn func()) { t.onReset = fn }

// Update processes the events gathered during one tick of dt seconds.
// The sampler is consulted at most once per call, so every pointer dragged
// in the same tick is admitted or rejected together. A stroke gains at most
// one point per call however many drags its pointer queued; later drags in
// the same tick are dropped. The countdown is rearmed only when a point was
// appended, so orphan drags do not use up the interval.
func (t *Tracker) Update(dt float64, events []Event) {
	var consulted, ready, appended bool
	var sampled map[*Stroke]bool
	for _, e := range events {
		switch e.Kind {
		case Down:
			t.pointerDown(e.PointerID)
		case Drag:
			if !t.canvas.accepts() {
				t.rejected(e)
				continue
			}
			if !t.drawing && !t.canvas.Is3D {
				// The pointer left the surface without releasing; start
				// over rather than bridge the gap.
				t.begin(e.PointerID)
			}
			if !consulted {
				ready = t.sampler.Advance(dt)
				consulted = true
			}
			if !ready {
				continue
			}
			s, ok := t.registry.Lookup(e.PointerID)
			if !ok {
				Logger().Debug("dropping orphan drag", slog.Int64("pointer", int64(e.PointerID)))
				continue
			}
			if sampled[s] {
				continue
			}
			if sampled == nil {
				sampled = make(map[*Stroke]bool)
			}
			sampled[s] = true
			t.sample(s, e)
			appended = true
		case Up:
			t.pointerUp(e.PointerID)
		case FocusExit:
			t.drawing = false
		}
	}
	if appended {
		t.sampler.Rearm()
	}
}

func (t *Tracker) pointerDown(id PointerID) {
	if !t.canvas.accepts() {
		t.rejected(Event{Kind: Down, PointerID: id})
		return
	}
	t.begin(id)
}

func (t *Tracker) pointerUp(id PointerID) {
	if t.canvas.Resizing {
		t.rejected(Event{Kind: Up, PointerID: id})
		return
	}
	s, ok := t.registry.Lookup(id)
	if t.registry.End(id) {
		t.drawing = false
	}
	if ok {
		t.ended(s)
	}
}

func (t *Tracker) begin(id PointerID) *Stroke {
	space := t.canvas.Space()
	s := newStroke(id, space, t.canvas.style(t.rand))
	s.handle = t.renderer.CreateStroke(space, s.Style)
	t.strokes = append(t.strokes, s)
	if prev := t.registry.Begin(id, s); prev != nil {
		Logger().Debug("discarding stale session",
			slog.Int64("pointer", int64(id)),
			slog.String("stroke", prev.ID),
			slog.Int("points", prev.Len()))
		t.ended(prev)
	}
	t.drawing = true
	return s
}

func (t *Tracker) sample(s *Stroke, e Event) {
	s.append(e.Sample(s.Space))
	t.renderer.UpdateStroke(s.handle, s.Points())
}

func (t *Tracker) ended(s *Stroke) {
	if t.onStrokeEnd != nil {
		t.onStrokeEnd(s.Snapshot())
	}
}

func (t *Tracker) rejected(e Event) {
	Logger().Debug("input suspended",
		slog.String("event", e.Kind.String()),
		slog.Int64("pointer", int64(e.PointerID)),
		slog.Bool("resizing", t.canvas.Resizing),
		slog.Bool("placing", t.canvas.Placing))
}

// Reset removes every session and releases the drawable of every stroke
// created since the previous reset.
func (t *Tracker) Reset() {
	for _, s := range t.strokes {
		t.renderer.DestroyStroke(s.handle)
	}
	Logger().Info("drawing reset", slog.Int("strokes", len(t.strokes)), slog.Int("active", t.registry.Len()))
	t.strokes = nil
	t.registry.Reset()
	t.sampler.Reset()
	t.drawing = false
	if t.onReset != nil {
		t.onReset()
	}
}

// Strokes returns snapshots of every stroke since the last reset, in the
// order they were started.
func (t *Tracker) Strokes() []Snapshot {
	out := make([]Snapshot, 0, len(t.strokes))
	for _, s := range t.strokes {
		out = append(out, s.Snapshot())
	}
	return out
}

// Session returns the live stroke held by id.
func (t *Tracker) Session(id PointerID) (Snapshot, bool) {
	s, ok := t.registry.Lookup(id)
	if !ok {
		return Snapshot{}, false
	}
	return s.Snapshot(), true
}

// Active returns the number of pointers currently holding a stroke.
func (t *Tracker) Active() int { return t.registry.Len() }

// Drawing reports whether a stroke is being extended.
func (t *Tracker) Drawing() bool { return t.drawing }

// Canvas returns the current modes.
func (t *Tracker) Canvas() Canvas { return t.canvas }

// Toggle3D switches between surface-local and world sampling. Strokes
// already in progress keep the space they started in.
func (t *Tracker) Toggle3D() bool {
	t.canvas.Is3D = !t.canvas.Is3D
	Logger().Info("drawing mode", slog.String("space", t.canvas.Space().String()))
	return t.canvas.Is3D
}

// ToggleResize suspends or resumes drawing for board manipulation.
func (t *Tracker) ToggleResize() bool {
	t.canvas.Resizing = !t.canvas.Resizing
	Logger().Info("resize", slog.Bool("active", t.canvas.Resizing))
	return t.canvas.Resizing
}

// StartPlacement suspends drawing while the board is being placed.
func (t *Tracker) StartPlacement() {
	t.canvas.Placing = true
	Logger().Info("placement started")
}

// EndPlacement resumes drawing after placement.
func (t *Tracker) EndPlacement() {
	t.canvas.Placing = false
	Logger().Info("placement ended")
}

// ToggleRainbow switches random stroke colors on or off. Turning it off
// restores the selected color for new strokes.
func (t *Tracker) ToggleRainbow() bool {
	t.canvas.Rainbow = !t.canvas.Rainbow
	return t.canvas.Rainbow
}

// SetColor selects the brush color.
func (t *Tracker) SetColor(c Color) { t.canvas.Color = c }

// SetWidth selects the brush width.
func (t *Tracker) SetWidth(w float32) { t.canvas.Width = w }
