package ws

import "sync"

// Registry maps a user identity to its currently active connection handle.
// At most one handle is registered per identity: a reconnect overwrites the
// previous entry. The registry is the only shared mutable structure of the
// realtime core; no I/O happens while its lock is held.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]Handle
}

func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[string]Handle),
	}
}

// Register binds identity to h, unconditionally replacing any prior handle.
// The prior handle is not closed; lifecycle teardown of the old connection
// remains its owner's responsibility.
func (r *Registry) Register(identity string, h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.conns[identity] = h
}

// Unregister removes the mapping for identity if present.
func (r *Registry) Unregister(identity string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.conns, identity)
}

// UnregisterHandle removes identity only if h is still the registered handle,
// and reports whether an entry was removed. A mismatch means a newer
// connection already replaced h; that is a benign no-op, so a stale
// disconnect cannot evict a live session.
func (r *Registry) UnregisterHandle(identity string, h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conns[identity] != h {
		return false
	}
	delete(r.conns, identity)
	return true
}

// Lookup returns the handle registered for identity, if any.
func (r *Registry) Lookup(identity string) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.conns[identity]
	return h, ok
}

// OnlineIdentities returns the current online set.
func (r *Registry) OnlineIdentities() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.conns))
	for id := range r.conns {
		ids = append(ids, id)
	}
	return ids
}

// snapshot returns identities and handles under a single lock acquisition so
// a broadcast observes a consistent online set.
func (r *Registry) snapshot() ([]string, []Handle) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.conns))
	handles := make([]Handle, 0, len(r.conns))
	for id, h := range r.conns {
		ids = append(ids, id)
		handles = append(handles, h)
	}
	return ids, handles
}
