package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

type testEvent struct {
	ID string    `json:"id"`
	At time.Time `json:"at"`
}

func (e testEvent) EventName() string     { return "test.happened" }
func (e testEvent) AggregateID() string   { return e.ID }
func (e testEvent) OccurredAt() time.Time { return e.At }

type recordingPublisher struct {
	records []EventRecord
	err     error
}

func (p *recordingPublisher) Publish(_ context.Context, rec EventRecord) error {
	p.records = append(p.records, rec)
	return p.err
}

func TestPublishDomainEvents(t *testing.T) {
	pub := &recordingPublisher{}
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	enc := JSONEventEncoder{IDGenerator: func() string { return "evt-1" }}

	if err := PublishDomainEvents(context.Background(), pub, enc, testEvent{ID: "agg", At: at}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pub.records) != 1 {
		t.Fatalf("published %d records", len(pub.records))
	}
	rec := pub.records[0]
	if rec.ID != "evt-1" || rec.Name != "test.happened" || rec.Aggregate != "agg" || !rec.OccurredAt.Equal(at) {
		t.Fatalf("unexpected record %+v", rec)
	}
	var decoded testEvent
	if err := json.Unmarshal(rec.Payload, &decoded); err != nil || decoded.ID != "agg" {
		t.Fatalf("payload %s: %v", rec.Payload, err)
	}
}

func TestPublishDomainEventsPropagatesErrors(t *testing.T) {
	boom := errors.New("broker down")
	pub := &recordingPublisher{err: boom}
	err := PublishDomainEvents(context.Background(), pub, nil, testEvent{ID: "a"}, testEvent{ID: "b"})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if len(pub.records) != 2 {
		t.Fatalf("publisher should see every event, saw %d", len(pub.records))
	}
}

func TestPublishDomainEventsNilPublisher(t *testing.T) {
	if err := PublishDomainEvents(context.Background(), nil, nil, testEvent{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
