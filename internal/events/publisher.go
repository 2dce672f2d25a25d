// Package events carries out-of-band notifications between components,
// currently the config reconciliation events emitted when the local and
// remote configuration stores diverge.
package events

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Publisher emits fire-and-forget JSON events on a named subject.
type Publisher interface {
	Publish(subject string, payload interface{}) error
}

// NATSPublisher publishes events over a NATS connection. A nil connection
// degrades to logging so single-node deployments run without a broker.
type NATSPublisher struct {
	conn   *nats.Conn
	logger zerolog.Logger
}

// NewNATSPublisher constructs a publisher for the given connection.
func NewNATSPublisher(conn *nats.Conn, logger zerolog.Logger) *NATSPublisher {
	return &NATSPublisher{
		conn:   conn,
		logger: logger.With().Str("component", "event_publisher").Logger(),
	}
}

// Publish encodes the payload and emits it on the subject.
func (p *NATSPublisher) Publish(subject string, payload interface{}) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode event payload: %w", err)
	}

	if p.conn == nil {
		p.logger.Info().Str("subject", subject).RawJSON("payload", encoded).Msg("event logged (no broker configured)")
		return nil
	}

	if err := p.conn.Publish(subject, encoded); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	return nil
}
