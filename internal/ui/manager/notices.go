package manager

import (
	"github.com/nothingTVatYT/Seed/internal/lifecycle"
	"github.com/nothingTVatYT/Seed/internal/pubsub"
)

// NoticeHub fans controller refusals out to the TUI. It satisfies
// lifecycle.Notifier and owns its broker, so the manager can keep a
// continuous listener on it while the controller stays UI-free.
type NoticeHub struct {
	broker *pubsub.Broker[lifecycle.Notice]
}

// NewNoticeHub creates an empty hub.
func NewNoticeHub() *NoticeHub {
	return &NoticeHub{broker: pubsub.NewBroker[lifecycle.Notice]()}
}

// Notify publishes the notice to all subscribers. It never blocks, which
// keeps the controller safe to call from any goroutine.
func (h *NoticeHub) Notify(n lifecycle.Notice) {
	h.broker.Publish(pubsub.UpdatedEvent, n)
}

// Close shuts down the underlying broker.
func (h *NoticeHub) Close() {
	h.broker.Close()
}
