package ws_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"chatapi/internal/ws"
)

// fakeHandle records pushed events and can be told to fail every push.
type fakeHandle struct {
	mu     sync.Mutex
	events []ws.Event
	fail   bool
	closed bool
}

func (f *fakeHandle) WriteJSON(v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		return errors.New("connection closed")
	}
	evt, ok := v.(ws.Event)
	if !ok {
		return errors.New("unexpected payload type")
	}
	f.events = append(f.events, evt)
	return nil
}

func (f *fakeHandle) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeHandle) received() []ws.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ws.Event(nil), f.events...)
}

func TestRegistrySnapshotTracksRegistrations(t *testing.T) {
	reg := ws.NewRegistry()

	assert.Empty(t, reg.OnlineIdentities())

	reg.Register("alice", &fakeHandle{})
	reg.Register("bob", &fakeHandle{})
	assert.ElementsMatch(t, []string{"alice", "bob"}, reg.OnlineIdentities())

	reg.Unregister("alice")
	assert.ElementsMatch(t, []string{"bob"}, reg.OnlineIdentities())

	// Unregister of an absent identity is a no-op.
	reg.Unregister("alice")
	assert.ElementsMatch(t, []string{"bob"}, reg.OnlineIdentities())
}

func TestRegistryLookup(t *testing.T) {
	reg := ws.NewRegistry()
	h := &fakeHandle{}
	reg.Register("alice", h)

	got, ok := reg.Lookup("alice")
	assert.True(t, ok)
	assert.Same(t, h, got)

	_, ok = reg.Lookup("bob")
	assert.False(t, ok)
}

func TestRegistryReconnectOverwrites(t *testing.T) {
	reg := ws.NewRegistry()
	h1 := &fakeHandle{}
	h2 := &fakeHandle{}

	reg.Register("alice", h1)
	reg.Register("alice", h2)

	got, ok := reg.Lookup("alice")
	assert.True(t, ok)
	assert.Same(t, h2, got)
	assert.ElementsMatch(t, []string{"alice"}, reg.OnlineIdentities())
}

func TestRegistryCompareAndUnregister(t *testing.T) {
	reg := ws.NewRegistry()
	h1 := &fakeHandle{}
	h2 := &fakeHandle{}

	reg.Register("alice", h1)
	reg.Register("alice", h2)

	// The stale first connection closing must not evict the newer session.
	assert.False(t, reg.UnregisterHandle("alice", h1))
	assert.ElementsMatch(t, []string{"alice"}, reg.OnlineIdentities())

	// The current connection closing removes the entry.
	assert.True(t, reg.UnregisterHandle("alice", h2))
	assert.Empty(t, reg.OnlineIdentities())

	// Further attempts are benign no-ops.
	assert.False(t, reg.UnregisterHandle("alice", h2))
}
