package ws_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chatapi/internal/domain"
	"chatapi/internal/ws"
)

func TestRouteNewMessageBothOnline(t *testing.T) {
	reg := ws.NewRegistry()
	delivery := ws.NewDelivery(reg, zap.NewNop())

	sender := &fakeHandle{}
	receiver := &fakeHandle{}
	reg.Register("alice", sender)
	reg.Register("bob", receiver)

	msg := &domain.Message{ID: "m1", SenderID: "alice", ReceiverID: "bob", Text: "hi"}
	delivery.RouteNewMessage(msg)

	recvEvents := receiver.received()
	require.Len(t, recvEvents, 1)
	assert.Equal(t, ws.EventNewMessage, recvEvents[0].Type)
	assert.Equal(t, msg, recvEvents[0].Message)

	sentEvents := sender.received()
	require.Len(t, sentEvents, 1)
	assert.Equal(t, ws.EventMessageSent, sentEvents[0].Type)
	assert.Equal(t, msg, sentEvents[0].Message)
}

func TestRouteNewMessageReceiverOffline(t *testing.T) {
	reg := ws.NewRegistry()
	delivery := ws.NewDelivery(reg, zap.NewNop())

	sender := &fakeHandle{}
	reg.Register("alice", sender)

	delivery.RouteNewMessage(&domain.Message{ID: "m1", SenderID: "alice", ReceiverID: "bob", Text: "hi"})

	sentEvents := sender.received()
	require.Len(t, sentEvents, 1)
	assert.Equal(t, ws.EventMessageSent, sentEvents[0].Type)
}

func TestRouteNewMessageNobodyOnline(t *testing.T) {
	reg := ws.NewRegistry()
	delivery := ws.NewDelivery(reg, zap.NewNop())

	// Must not panic with neither side connected.
	delivery.RouteNewMessage(&domain.Message{ID: "m1", SenderID: "alice", ReceiverID: "bob", Text: "hi"})
}

func TestRouteNewMessagePushFailuresAreIndependent(t *testing.T) {
	reg := ws.NewRegistry()
	delivery := ws.NewDelivery(reg, zap.NewNop())

	sender := &fakeHandle{}
	receiver := &fakeHandle{fail: true}
	reg.Register("alice", sender)
	reg.Register("bob", receiver)

	delivery.RouteNewMessage(&domain.Message{ID: "m1", SenderID: "alice", ReceiverID: "bob", Text: "hi"})

	// The broken receiver handle must not affect the sender's push.
	sentEvents := sender.received()
	require.Len(t, sentEvents, 1)
	assert.Equal(t, ws.EventMessageSent, sentEvents[0].Type)
	assert.Empty(t, receiver.received())
}
