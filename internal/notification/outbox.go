package notification

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const deliverTimeout = 10 * time.Second

// Publisher accepts events without blocking the caller.
type Publisher interface {
	Publish(ev Event)
}

// Sink delivers one event to the in-app inbox or a queue.
type Sink interface {
	Deliver(ctx context.Context, ev Event) error
}

// Outbox queues events in memory and hands them to a Sink from a single
// worker. A full queue drops the event; publishing never fails a request.
type Outbox struct {
	sink   Sink
	logger *zap.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan Event
	done   chan struct{}
}

func NewOutbox(sink Sink, buffer int, logger *zap.Logger) *Outbox {
	if buffer <= 0 {
		buffer = 100
	}

	o := &Outbox{
		sink:   sink,
		logger: logger,
		queue:  make(chan Event, buffer),
		done:   make(chan struct{}),
	}

	go o.worker()
	return o
}

func (o *Outbox) worker() {
	defer close(o.done)

	for ev := range o.queue {
		ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
		if err := o.sink.Deliver(ctx, ev); err != nil {
			o.logger.Error("notification delivery failed",
				zap.String("event_id", ev.ID),
				zap.Uint("recipient_id", ev.RecipientID),
				zap.String("kind", string(ev.Kind)),
				zap.Error(err),
			)
		}
		cancel()
	}
}

func (o *Outbox) Publish(ev Event) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.closed {
		o.logger.Warn("outbox closed, dropping notification", zap.String("event_id", ev.ID))
		return
	}

	select {
	case o.queue <- ev:
	default:
		o.logger.Warn("notification queue full, dropping event",
			zap.String("event_id", ev.ID),
			zap.String("kind", string(ev.Kind)),
		)
	}
}

// Close stops accepting events and waits until the queued ones are handed
// to the sink.
func (o *Outbox) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	close(o.queue)
	o.mu.Unlock()

	<-o.done
}
