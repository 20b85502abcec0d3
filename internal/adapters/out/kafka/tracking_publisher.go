// Package kafka fans committed tracking events out to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"parcelhub/internal/core/domain/model/tracking"
	"parcelhub/internal/metrics"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// TrackingEventMessage is the JSON value written for every event.
type TrackingEventMessage struct {
	ID         string    `json:"id"`
	TrackingID string    `json:"trackingId"`
	ParcelID   *string   `json:"parcelId,omitempty"`
	Status     string    `json:"status"`
	Details    string    `json:"details"`
	UpdatedBy  string    `json:"updated_by"`
	Timestamp  time.Time `json:"timestamp"`
}

// TrackingPublisher implements ports.TrackingPublisher. Messages are keyed
// by tracking id so that one parcel's history stays in one partition and
// keeps its order.
type TrackingPublisher struct {
	writer  messageWriter
	metrics *metrics.Metrics
}

// Publish runs after a commit on the request path, so the writer flushes
// each event instead of waiting for a full batch.
const (
	batchTimeout = 5 * time.Millisecond
	writeTimeout = 2 * time.Second
)

// NewTrackingPublisher writes to topic on broker.
func NewTrackingPublisher(broker, topic string, m *metrics.Metrics) *TrackingPublisher {
	return newTrackingPublisher(newWriter(broker, topic), m)
}

func newWriter(broker, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           batchTimeout,
		WriteTimeout:           writeTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

func newTrackingPublisher(writer messageWriter, m *metrics.Metrics) *TrackingPublisher {
	return &TrackingPublisher{writer: writer, metrics: m}
}

// Publish writes one event.
func (p *TrackingPublisher) Publish(ctx context.Context, event *tracking.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	value, err := json.Marshal(toMessage(event))
	if err != nil {
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.TrackingID()),
		Value: value,
		Time:  event.At(),
	})
	p.observe(err)
	return err
}

// Close flushes and closes the writer.
func (p *TrackingPublisher) Close() error {
	return p.writer.Close()
}

func (p *TrackingPublisher) observe(err error) {
	if p.metrics == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	p.metrics.TrackingPublished.WithLabelValues(result).Inc()
}

func toMessage(event *tracking.Event) TrackingEventMessage {
	msg := TrackingEventMessage{
		ID:         event.ID().String(),
		TrackingID: event.TrackingID(),
		Status:     event.Status(),
		Details:    event.Details(),
		UpdatedBy:  event.UpdatedBy(),
		Timestamp:  event.At(),
	}
	if event.ParcelID() != nil {
		parcelID := event.ParcelID().String()
		msg.ParcelID = &parcelID
	}
	return msg
}
