package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/geojsonprofil/profil/internal/core/domain"
)

// Subjects below the configured prefix.
const (
	subjectCompleted = "completed"
)

// Publisher implements ports.EventPublisher using core NATS.
// Events are fire-and-forget; nothing is stored by the broker.
type Publisher struct {
	conn   *nats.Conn
	prefix string
}

// NewPublisher connects to NATS and publishes under the subject prefix.
func NewPublisher(url, prefix string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("profil"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Publisher{conn: conn, prefix: prefix}, nil
}

// PublishConversion announces a finished conversion on <prefix>.completed.
func (p *Publisher) PublishConversion(ctx context.Context, event *domain.ConversionEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := conversionMessage(p.prefix, event)
	if err != nil {
		return err
	}
	return p.conn.PublishMsg(msg)
}

// IsConnected reports whether the connection is currently up.
func (p *Publisher) IsConnected() bool {
	return p.conn != nil && p.conn.IsConnected()
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

func conversionMessage(prefix string, event *domain.ConversionEvent) (*nats.Msg, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal conversion event: %w", err)
	}
	msg := nats.NewMsg(prefix + "." + subjectCompleted)
	msg.Header.Set(nats.MsgIdHdr, event.ID)
	msg.Header.Set("Content-Type", "application/json")
	msg.Data = data
	return msg, nil
}
