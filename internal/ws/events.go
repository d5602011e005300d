package ws

import "chatapi/internal/domain"

// Event types pushed over the live connection. Clients never send events in
// the other direction; all mutations go through the HTTP API.
const (
	EventOnlineSetChanged = "online-set-changed"
	EventNewMessage       = "new-message"
	EventMessageSent      = "message-sent"
)

// Event is the envelope for every server-to-client push.
type Event struct {
	Type          string          `json:"type"`
	OnlineUserIDs []string        `json:"online_user_ids,omitempty"`
	Message       *domain.Message `json:"message,omitempty"`
}
