package input

import (
	"sync"

	"github.com/ItsNotACoffee/HoloPlayground/internal/paint"
)

// Queue collects pointer events from any goroutine until the tick loop
// drains them.
type Queue struct {
	events []paint.Event
	mu     sync.Mutex
}

func NewQueue() *Queue {
	return &Queue{events: make([]paint.Event, 0, 16)}
}

// Push appends events in delivery order.
func (q *Queue) Push(events ...paint.Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, events...)
}

// Drain returns every queued event and empties the queue.
func (q *Queue) Drain() []paint.Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = make([]paint.Event, 0, cap(out))
	return out
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
