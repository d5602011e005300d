package ws

import (
	"go.uber.org/zap"

	"chatapi/internal/domain"
)

// Delivery pushes freshly persisted messages to whichever parties are
// connected. The receiver gets a new-message event; the sender gets a
// message-sent event so another open tab can reflect the send. The two
// pushes are independent: absence or failure on one side never affects the
// other, and failures never reach the HTTP caller.
type Delivery struct {
	registry *Registry
	log      *zap.Logger
}

func NewDelivery(registry *Registry, log *zap.Logger) *Delivery {
	return &Delivery{registry: registry, log: log}
}

// RouteNewMessage delivers m best-effort. The message is already committed
// by the time this runs; a closed or broken handle is logged and swallowed.
func (d *Delivery) RouteNewMessage(m *domain.Message) {
	if h, ok := d.registry.Lookup(m.ReceiverID); ok {
		if err := h.WriteJSON(Event{Type: EventNewMessage, Message: m}); err != nil {
			d.log.Warn("new-message push failed",
				zap.String("message_id", m.ID),
				zap.String("receiver_id", m.ReceiverID),
				zap.Error(err))
		}
	}

	if h, ok := d.registry.Lookup(m.SenderID); ok {
		if err := h.WriteJSON(Event{Type: EventMessageSent, Message: m}); err != nil {
			d.log.Warn("message-sent push failed",
				zap.String("message_id", m.ID),
				zap.String("sender_id", m.SenderID),
				zap.Error(err))
		}
	}
}
