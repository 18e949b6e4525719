package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ecocash/internal/model"
)

// Routing keys for offer lifecycle events.
const (
	KindCreated   = "offer.created"
	KindAccepted  = "offer.accepted"
	KindCollected = "offer.collected"
	KindSettled   = "offer.settled"
)

// OfferEvent is the message published after a lifecycle transition commits.
type OfferEvent struct {
	ID         uuid.UUID         `json:"id"`
	Kind       string            `json:"kind"`
	Offer      model.Offer       `json:"offer"`
	Settlement *model.Settlement `json:"settlement,omitempty"` // only on offer.settled
	OccurredAt time.Time         `json:"occurred_at"`
}

// Publisher sends a serialized event to the broker.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body any) error
	Close()
}

// Emitter accepts events for asynchronous delivery. Emit must never block
// the caller; the ledger invokes it while holding its lock.
type Emitter interface {
	Emit(evt OfferEvent)
}

// NoopPublisher is used when no broker is configured. Events are dropped
// with a debug log line.
type NoopPublisher struct {
	Logg *slog.Logger
}

func (p *NoopPublisher) Publish(ctx context.Context, routingKey string, body any) error {
	if p.Logg != nil {
		p.Logg.Debug("event publish skipped, no broker configured", "routing_key", routingKey)
	}
	return nil
}

func (p *NoopPublisher) Close() {}
