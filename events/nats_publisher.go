package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

const subjectPrefix = "sidepot.events."

// Envelope wraps an event for the wire with identity and provenance.
type Envelope struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Timestamp time.Time       `json:"timestamp"`
	Source    string          `json:"source"`
	Payload   json.RawMessage `json:"payload"`
}

// NATSPublisher forwards committed domain events to NATS subjects so other
// services (notifications, analytics) can consume the settlement feed without
// touching the ledger database.
type NATSPublisher struct {
	conn   *nats.Conn
	source string
}

// NewNATSPublisher connects to NATS and returns a publisher.
func NewNATSPublisher(url, source string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}

	return &NATSPublisher{conn: conn, source: source}, nil
}

// AttachTo subscribes the publisher to every event type on the bus.
func (p *NATSPublisher) AttachTo(bus *Bus) {
	types := []EventType{
		EventTypeBalanceChange,
		EventTypeBetPlaced,
		EventTypePotStateChange,
		EventTypePotResolved,
		EventTypeDisputeFiled,
	}
	for _, t := range types {
		bus.Subscribe(t, p.handle)
	}
}

func (p *NATSPublisher) handle(ctx context.Context, event Event) {
	if err := p.publish(event); err != nil {
		log.WithFields(log.Fields{
			"eventType": event.Type(),
			"error":     err,
		}).Error("Failed to publish event to NATS")
	}
}

func (p *NATSPublisher) publish(event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := Envelope{
		EventID:   uuid.New().String(),
		EventType: string(event.Type()),
		Timestamp: time.Now().UTC(),
		Source:    p.source,
		Payload:   payload,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	subject := subjectPrefix + string(event.Type())
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}

	return nil
}

// Close drains and closes the NATS connection.
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		log.WithError(err).Warn("Error draining NATS connection")
	}
}
