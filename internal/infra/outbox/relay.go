package outbox

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	appoutbox "balilove/internal/app/outbox"
)

// Queue is the claim/ack surface of a durable event store.
type Queue interface {
	Claim(ctx context.Context, workerID string) (*EventDocument, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, next time.Time, errMsg string) error
}

// Relay drains a Queue into a broker publisher, rescheduling failures
// according to Backoff. Store errors end the current pass only; the next
// tick retries.
type Relay struct {
	Queue     Queue
	Publisher appoutbox.Publisher
	Interval  time.Duration
	Backoff   []time.Duration
	ID        string
	Logger    *slog.Logger
	Now       func() time.Time
}

var ErrRelayNotConfigured = errors.New("outbox: relay missing dependencies")

func (r *Relay) Run(ctx context.Context) error {
	if r.Queue == nil || r.Publisher == nil {
		return ErrRelayNotConfigured
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	ticker := time.NewTicker(r.interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.drain(ctx); err != nil && ctx.Err() == nil && r.Logger != nil {
				r.Logger.Error("outbox relay pass failed", "relay_id", r.ID, "error", err)
			}
		}
	}
}

// drain publishes due records until the queue is idle.
func (r *Relay) drain(ctx context.Context) error {
	for {
		sent, err := r.processOnce(ctx)
		if err != nil || !sent {
			return err
		}
	}
}

// processOnce handles a single record. It reports false when nothing was due.
func (r *Relay) processOnce(ctx context.Context) (bool, error) {
	doc, err := r.Queue.Claim(ctx, r.ID)
	if err != nil || doc == nil {
		return false, err
	}
	if err := r.Publisher.Publish(ctx, doc.Record()); err != nil {
		if r.Logger != nil {
			r.Logger.Warn("outbox publish failed", "event_id", doc.ID, "event", doc.Name, "attempts", doc.Attempts+1, "error", err)
		}
		return true, r.Queue.MarkFailed(ctx, doc.ID, r.nextRetry(doc.Attempts), err.Error())
	}
	return true, r.Queue.MarkSent(ctx, doc.ID)
}

func (r *Relay) interval() time.Duration {
	if r.Interval <= 0 {
		return 500 * time.Millisecond
	}
	return r.Interval
}

func (r *Relay) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now().UTC()
}

func (r *Relay) nextRetry(attempts int) time.Time {
	if attempts < len(r.Backoff) {
		return r.now().Add(r.Backoff[attempts])
	}
	if len(r.Backoff) > 0 {
		return r.now().Add(r.Backoff[len(r.Backoff)-1])
	}
	return r.now().Add(5 * time.Second)
}
