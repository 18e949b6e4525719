package events

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	queueSize      = 100
	publishTimeout = 5 * time.Second
)

// Dispatcher decouples ledger operations from the broker: Emit enqueues and
// returns immediately, a fixed set of workers drains the queue. A full queue
// drops the event rather than blocking a ledger operation.
type Dispatcher struct {
	publisher Publisher
	queue     chan OfferEvent
	wg        sync.WaitGroup
	ctx       context.Context // parent for every publish; cancelling it fails a drain fast
	workers   int
	logg      *slog.Logger

	mu     sync.Mutex
	closed bool
}

func NewDispatcher(ctx context.Context, publisher Publisher, workers int, logg *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	return &Dispatcher{
		publisher: publisher,
		queue:     make(chan OfferEvent, queueSize),
		ctx:       ctx,
		workers:   workers,
		logg:      logg,
	}
}

func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for evt := range d.queue {
		ctx, cancel := context.WithTimeout(d.ctx, publishTimeout)
		err := d.publisher.Publish(ctx, evt.Kind, evt)
		cancel()
		if err != nil {
			d.logg.Warn("failed to publish offer event",
				"kind", evt.Kind,
				"offer", evt.Offer.ID,
				"error", err,
			)
		}
	}
}

// Emit never blocks; queued events are delivered in the background.
func (d *Dispatcher) Emit(evt OfferEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	select {
	case d.queue <- evt:
	default:
		d.logg.Warn("event queue full, dropping event", "kind", evt.Kind, "offer", evt.Offer.ID)
	}
}

// Stop closes the queue; workers drain what is already buffered and exit.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	close(d.queue)
	d.closed = true
}

func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
