package paint

// Registry maps a pointer identifier to its active stroke. It is not safe
// for concurrent use; the tracker touches it only from its update tick.
type Registry struct {
	sessions map[PointerID]*Stroke
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[PointerID]*Stroke)}
}

// Begin installs s as the active stroke for id. A session already held by
// id is stale: it is dropped, never merged, and returned as prev.
func (r *Registry) Begin(id PointerID, s *Stroke) (prev *Stroke) {
	prev = r.sessions[id]
	r.sessions[id] = s
	return prev
}

// Lookup returns the active stroke for id.
func (r *Registry) Lookup(id PointerID) (*Stroke, bool) {
	s, ok := r.sessions[id]
	return s, ok
}

// End removes the session for id if there is one and reports whether the
// registry is now empty. Ending an absent session is a no-op.
func (r *Registry) End(id PointerID) (empty bool) {
	delete(r.sessions, id)
	return len(r.sessions) == 0
}

// IsEmpty reports whether no pointer holds a session.
func (r *Registry) IsEmpty() bool { return len(r.sessions) == 0 }

// Len returns the number of live sessions.
func (r *Registry) Len() int { return len(r.sessions) }

// Reset drops every session.
func (r *Registry) Reset() {
	clear(r.sessions)
}
