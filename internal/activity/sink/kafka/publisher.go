// Package kafka mirrors activity records onto a Kafka topic so downstream
// consumers (SIEM, reporting) see the same trail as the relational store.
// Publishing is fire-and-forget: a broker outage never affects request
// handling or the primary store write.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/Traasa/SistemDekor-sub004/internal/activity"
)

// DefaultTopic is the topic records are published to unless configured
// otherwise.
const DefaultTopic = "sistemdekor.activity"

// Publisher mirrors records to Kafka. It wraps another sink so that the
// relational write path keeps working unchanged.
type Publisher struct {
	client *kgo.Client
	topic  string
	next   activity.Sink
	logger *slog.Logger
}

// New creates a Kafka publisher chained in front of next.
func New(client *kgo.Client, topic string, next activity.Sink, logger *slog.Logger) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{client: client, topic: topic, next: next, logger: logger}
}

// message is the wire form of one record.
type message struct {
	ID          string         `json:"id"`
	ActorID     int64          `json:"actor_id"`
	Type        string         `json:"activity_type"`
	Description string         `json:"description"`
	SubjectType *string        `json:"subject_type,omitempty"`
	SubjectID   *int64         `json:"subject_id,omitempty"`
	Properties  map[string]any `json:"properties,omitempty"`
	IPAddress   string         `json:"ip_address"`
	UserAgent   string         `json:"user_agent"`
	Method      string         `json:"method"`
	URL         string         `json:"url"`
	CreatedAt   string         `json:"created_at"`
}

// Emit publishes the record asynchronously and forwards it to the chained
// sink. The chained sink's verdict is what the caller sees; Kafka delivery is
// best-effort on top.
func (p *Publisher) Emit(rec activity.Record) bool {
	payload, err := json.Marshal(message{
		ID:          rec.ID.String(),
		ActorID:     rec.ActorID,
		Type:        string(rec.Type),
		Description: rec.Description,
		SubjectType: rec.SubjectType,
		SubjectID:   rec.SubjectID,
		Properties:  rec.Properties,
		IPAddress:   rec.IPAddress,
		UserAgent:   rec.UserAgent,
		Method:      rec.Method,
		URL:         rec.URL,
		CreatedAt:   rec.CreatedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		p.logger.Error("marshal activity message", "error", err)
		return p.next.Emit(rec)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(strconv.FormatInt(rec.ActorID, 10)),
		Value: payload,
	}
	p.client.Produce(context.Background(), record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.Warn("activity mirror publish failed",
				"topic", p.topic,
				"error", err,
			)
		}
	})

	return p.next.Emit(rec)
}

// Close flushes in-flight publishes with a short deadline.
func (p *Publisher) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.client.Flush(ctx); err != nil {
		return fmt.Errorf("flush activity mirror: %w", err)
	}
	return nil
}
