package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"balilove/internal/app/outbox"
)

// Sender writes one message to a topic.
type Sender interface {
	Send(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

// EventPublisher wraps encoded domain events in a CloudEvents 1.0 envelope
// and sends them to "<prefix><aggregate-kind>.events.v1".
type EventPublisher struct {
	Sender      Sender
	TopicPrefix string
	Source      string
	Logger      *slog.Logger
}

var ErrSenderMissing = errors.New("kafka: publisher has no sender")

func (p *EventPublisher) Publish(ctx context.Context, rec outbox.EventRecord) error {
	if p.Sender == nil {
		return ErrSenderMissing
	}
	payload, headers, err := p.envelope(rec)
	if err != nil {
		return fmt.Errorf("kafka: encode %s: %w", rec.Name, err)
	}
	topic := p.topicFor(rec.Name)
	if err := p.Sender.Send(ctx, topic, rec.Aggregate, payload, headers); err != nil {
		return fmt.Errorf("kafka: send %s: %w", topic, err)
	}
	if p.Logger != nil {
		p.Logger.Debug("event published", slog.String("topic", topic), slog.String("event", rec.Name), slog.String("id", rec.ID))
	}
	return nil
}

func (p *EventPublisher) envelope(rec outbox.EventRecord) ([]byte, map[string]string, error) {
	data := map[string]any{}
	if len(rec.Payload) > 0 {
		if err := json.Unmarshal(rec.Payload, &data); err != nil {
			return nil, nil, err
		}
	}
	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}
	evt := map[string]any{
		"specversion":     "1.0",
		"id":              id,
		"type":            rec.Name + ".v1",
		"source":          p.source(),
		"time":            rec.OccurredAt,
		"datacontenttype": "application/json",
		"data":            data,
	}
	if rec.Aggregate != "" {
		evt["subject"] = rec.Aggregate
	}
	if trace, ok := rec.Headers["traceparent"]; ok {
		evt["traceparent"] = trace
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return nil, nil, err
	}
	headers := map[string]string{
		"content-type": "application/cloudevents+json",
	}
	for k, v := range rec.Headers {
		headers[k] = v
	}
	return payload, headers, nil
}

func (p *EventPublisher) topicFor(name string) string {
	base := name
	if idx := strings.IndexRune(name, '.'); idx > 0 {
		base = name[:idx]
	}
	return p.TopicPrefix + base + ".events.v1"
}

func (p *EventPublisher) source() string {
	if p.Source != "" {
		return p.Source
	}
	return "app://balilove"
}

var _ outbox.Publisher = (*EventPublisher)(nil)
var _ Sender = (*Producer)(nil)
