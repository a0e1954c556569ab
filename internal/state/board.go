package state

import (
	"log"
	"slices"
	"sync"
	"time"
)

// Board keeps the finished strokes of the current drawing, ordered by the
// sequence they were committed in. It is safe for concurrent use.
type Board struct {
	site    string
	clock   Clock
	strokes map[string]Stroke
	mu      sync.RWMutex
}

func NewBoard() *Board {
	return &Board{
		site:    SiteID(),
		strokes: make(map[string]Stroke),
	}
}

// Commit stamps s with the next sequence number and stores it. Strokes with
// fewer than two points draw nothing and are skipped; a stroke already on
// the board is ignored.
func (b *Board) Commit(s Stroke) (Stroke, bool) {
	if len(s.Points) < 2 {
		return Stroke{}, false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.strokes[s.ID]; exists {
		log.Printf("[BOARD] Stroke %s already committed, ignoring", s.ID)
		return Stroke{}, false
	}
	s.Seq = b.clock.Tick()
	s.Site = b.site
	if s.Time.IsZero() {
		s.Time = time.Now()
	}
	b.strokes[s.ID] = s
	return s, true
}

// Strokes returns every committed stroke in draw order.
func (b *Board) Strokes() []Stroke {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Stroke, 0, len(b.strokes))
	for _, s := range b.strokes {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b Stroke) int {
		switch {
		case a.Seq < b.Seq:
			return -1
		case a.Seq > b.Seq:
			return 1
		}
		return 0
	})
	return out
}

// Len returns the number of committed strokes.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.strokes)
}

// Clear drops every stroke. Sequence numbers keep increasing.
func (b *Board) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := len(b.strokes)
	b.strokes = make(map[string]Stroke)
	log.Printf("[BOARD] Cleared %d strokes", n)
}

// Site returns the session identifier stamped on committed strokes.
func (b *Board) Site() string { return b.site }
