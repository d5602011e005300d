package ws

import "go.uber.org/zap"

// Presence broadcasts the full online identity set to every live connection
// whenever the registry changes. Full-state broadcasts keep clients correct
// under churn without diff bookkeeping; the online set is small.
type Presence struct {
	registry *Registry
	log      *zap.Logger
}

func NewPresence(registry *Registry, log *zap.Logger) *Presence {
	return &Presence{registry: registry, log: log}
}

// BroadcastOnlineSet pushes the current identity list to every registered
// handle. Pushes happen outside the registry lock, and a failing handle
// never prevents delivery to the remaining ones.
func (p *Presence) BroadcastOnlineSet() {
	ids, handles := p.registry.snapshot()

	evt := Event{
		Type:          EventOnlineSetChanged,
		OnlineUserIDs: ids,
	}
	for _, h := range handles {
		if err := h.WriteJSON(evt); err != nil {
			p.log.Debug("presence push failed", zap.Error(err))
		}
	}
}
