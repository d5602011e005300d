package ws_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chatapi/internal/ws"
)

func TestBroadcastOnlineSet(t *testing.T) {
	reg := ws.NewRegistry()
	presence := ws.NewPresence(reg, zap.NewNop())

	alice := &fakeHandle{}
	bob := &fakeHandle{}
	reg.Register("alice", alice)
	reg.Register("bob", bob)

	presence.BroadcastOnlineSet()

	for _, h := range []*fakeHandle{alice, bob} {
		events := h.received()
		require.Len(t, events, 1)
		assert.Equal(t, ws.EventOnlineSetChanged, events[0].Type)
		assert.ElementsMatch(t, []string{"alice", "bob"}, events[0].OnlineUserIDs)
	}
}

func TestBroadcastIsolatesFailingHandle(t *testing.T) {
	reg := ws.NewRegistry()
	presence := ws.NewPresence(reg, zap.NewNop())

	alice := &fakeHandle{}
	bob := &fakeHandle{fail: true}
	carol := &fakeHandle{}
	reg.Register("alice", alice)
	reg.Register("bob", bob)
	reg.Register("carol", carol)

	presence.BroadcastOnlineSet()

	for _, h := range []*fakeHandle{alice, carol} {
		events := h.received()
		require.Len(t, events, 1)
		assert.ElementsMatch(t, []string{"alice", "bob", "carol"}, events[0].OnlineUserIDs)
	}
	assert.Empty(t, bob.received())
}

func TestBroadcastToEmptyRegistry(t *testing.T) {
	reg := ws.NewRegistry()
	presence := ws.NewPresence(reg, zap.NewNop())

	// Must not panic with no connections.
	presence.BroadcastOnlineSet()
}
